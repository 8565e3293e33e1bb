package state

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Entity struct {
	ID uint `gorm:"primaryKey"`
}

// Build records one completed bundle build.
type Build struct {
	Entity

	// The Minecraft version the bundle was built for
	Version string `gorm:"size:32;index"`
	// sha1 of the client package the bundle was derived from
	JarHash string `gorm:"size:40"`

	NumBlocks uint
	NumItems  uint
	Created   time.Time
}

func InitDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	db.AutoMigrate(&Build{})

	return db, nil
}

// RecordBuild appends a ledger row for a finished build.
func RecordBuild(db *gorm.DB, version string, jarHash string, numBlocks int, numItems int) error {
	return db.Create(&Build{
		Version:   version,
		JarHash:   jarHash,
		NumBlocks: uint(numBlocks),
		NumItems:  uint(numItems),
		Created:   time.Now(),
	}).Error
}

// LastBuild returns the most recent ledger row for a version, if any.
func LastBuild(db *gorm.DB, version string) (*Build, error) {
	var build Build
	result := db.Where("version = ?", version).Order("id desc").First(&build)
	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return &build, nil
}
