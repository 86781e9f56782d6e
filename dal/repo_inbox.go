package dal

import (
	"time"
)

// AddInboxItem references an item from an owner's inbox. Adding the same reference twice is a no-op.
func (repo *Repo) AddInboxItem(item *InboxItem) error {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	addedAt := item.AddedAt
	if addedAt.IsZero() {
		addedAt = time.Now().UTC()
	}
	_, err := repo.db.Exec(`INSERT INTO inbox_items (owner_id, item_type, item_ref, added_at) VALUES(?, ?, ?, ?)
		ON CONFLICT DO NOTHING`, item.OwnerId, item.ItemType, item.ItemRef, addedAt)
	return err
}

func (repo *Repo) RemoveInboxItem(ownerId string, itemType InboxItemType, itemRef string) error {

	repo.muDb.Lock()
	defer repo.muDb.Unlock()

	_, err := repo.db.Exec(`DELETE FROM inbox_items WHERE owner_id=? AND item_type=? AND item_ref=?`,
		ownerId, itemType, itemRef)
	return err
}

func (repo *Repo) GetInboxItems(ownerId string) ([]*InboxItem, error) {

	repo.muDb.RLock()
	defer repo.muDb.RUnlock()

	rows, err := repo.db.Query(`SELECT owner_id, item_type, item_ref, added_at FROM inbox_items
		WHERE owner_id=? ORDER BY added_at DESC, rowid DESC`, ownerId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := make([]*InboxItem, 0)
	for rows.Next() {
		item := InboxItem{}
		if err = rows.Scan(&item.OwnerId, &item.ItemType, &item.ItemRef, &item.AddedAt); err != nil {
			return nil, err
		}
		res = append(res, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
