package refstore

import (
	"strings"

	"github.com/calebmur/uamwatch/model"
)

// Store holds the joined reference lookups for a detection run. It is
// frozen after Build and safe to share read-only across any partitioning
// of the event stream.
type Store struct {
	personnel map[string]model.PersonnelRecord
	assets    map[string]model.Asset
	approvals map[string]map[string]struct{}
}

// Build joins the three reference tables into lookup form. Duplicate user
// or asset ids overwrite earlier rows; only requests whose status equals
// "approved" case-insensitively contribute to the approvals set. Build
// never fails — absent entries surface at detection time instead.
func Build(personnel []model.PersonnelRecord, assets []model.Asset, requests []model.AccessRequest) *Store {
	store := &Store{
		personnel: make(map[string]model.PersonnelRecord, len(personnel)),
		assets:    make(map[string]model.Asset, len(assets)),
		approvals: make(map[string]map[string]struct{}),
	}

	for _, record := range personnel {
		store.personnel[record.UserID] = record
	}
	for _, asset := range assets {
		store.assets[asset.AssetID] = asset
	}
	for _, request := range requests {
		if !strings.EqualFold(request.Status, "approved") {
			continue
		}
		set, ok := store.approvals[request.UserID]
		if !ok {
			set = make(map[string]struct{})
			store.approvals[request.UserID] = set
		}
		set[request.AssetID] = struct{}{}
	}

	return store
}

// Personnel retrieves the clearance record for a user
func (s *Store) Personnel(userID string) (model.PersonnelRecord, bool) {
	record, ok := s.personnel[userID]
	return record, ok
}

// Asset retrieves an asset by id
func (s *Store) Asset(assetID string) (model.Asset, bool) {
	asset, ok := s.assets[assetID]
	return asset, ok
}

// Approved reports whether the user has at least one approved access
// request for the asset
func (s *Store) Approved(userID, assetID string) bool {
	set, ok := s.approvals[userID]
	if !ok {
		return false
	}
	_, ok = set[assetID]
	return ok
}
