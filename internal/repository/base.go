// Package repository provides data access layer implementations for the application.
package repository

import (
	"fmt"
	"strings"

	"kkapi/internal/models"

	"gorm.io/gorm"
)

// changeSet accumulates the columns of a partial update together with a
// predicate that is true only when at least one column actually changes
// value. The predicate rides inside the UPDATE statement so a same-value
// write reports matched without modified, mirroring document-store
// update semantics.
type changeSet struct {
	updates map[string]interface{}
	preds   []string
	args    []interface{}
}

func newChangeSet() *changeSet {
	return &changeSet{updates: make(map[string]interface{})}
}

func (cs *changeSet) set(column string, value interface{}) {
	cs.updates[column] = value
	cs.preds = append(cs.preds, fmt.Sprintf("%s <> ?", column))
	cs.args = append(cs.args, value)
}

func (cs *changeSet) empty() bool {
	return len(cs.updates) == 0
}

func (cs *changeSet) changedClause() (string, []interface{}) {
	return "(" + strings.Join(cs.preds, " OR ") + ")", cs.args
}

// ownedUpdate applies cs to the record identified by id under ownerCol =
// ownerID. The owner filter is part of the UPDATE itself, so a record held
// by a different owner is indistinguishable from a missing one; correctness
// relies on the store's atomic conditional update, not on a read first.
func ownedUpdate(tx *gorm.DB, model interface{}, ownerCol string, id, ownerID uint, cs *changeSet) (models.UpdateResult, error) {
	ownerFilter := fmt.Sprintf("id = ? AND %s = ?", ownerCol)

	clause, args := cs.changedClause()
	res := tx.Model(model).
		Where(ownerFilter, id, ownerID).
		Where(clause, args...).
		Updates(cs.updates)
	if res.Error != nil {
		return models.UpdateResult{}, res.Error
	}

	out := models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.RowsAffected,
		ModifiedCount: res.RowsAffected,
	}
	if res.RowsAffected > 0 {
		return out, nil
	}

	// Nothing modified: distinguish a no-op match from a miss.
	var matched int64
	if err := tx.Model(model).Where(ownerFilter, id, ownerID).Count(&matched).Error; err != nil {
		return models.UpdateResult{}, err
	}
	out.MatchedCount = matched
	return out, nil
}

// ownedDelete removes the record identified by id under ownerCol = ownerID.
func ownedDelete(tx *gorm.DB, model interface{}, ownerCol string, id, ownerID uint) (models.DeleteResult, error) {
	res := tx.Where(fmt.Sprintf("id = ? AND %s = ?", ownerCol), id, ownerID).Delete(model)
	if res.Error != nil {
		return models.DeleteResult{}, res.Error
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected}, nil
}
