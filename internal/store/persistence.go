package store

import (
	"errors"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"cell_directory/internal/models"
)

// dbPersistence keeps the collection blob in the storage_blobs table,
// one row per key.
type dbPersistence struct {
	db  *gorm.DB
	key string
}

// NewDBPersistence wires the store to the database blob row for key.
func NewDBPersistence(db *gorm.DB, key string) Persistence {
	return &dbPersistence{db: db, key: key}
}

func (d *dbPersistence) Read() ([]byte, bool, error) {
	var blob models.StorageBlob
	err := d.db.First(&blob, "key = ?", d.key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return blob.Value, true, nil
}

func (d *dbPersistence) Write(data []byte) error {
	blob := models.StorageBlob{Key: d.key, Value: data}
	if err := d.db.Save(&blob).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			logrus.WithFields(logrus.Fields{
				"key":  d.key,
				"code": string(pqErr.Code),
			}).Error("storage blob write rejected by postgres")
		}
		return err
	}
	return nil
}
