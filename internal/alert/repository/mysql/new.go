package mysql

import (
	"stockwatch-srv/internal/alert/repository"
	"stockwatch-srv/pkg/log"

	"gorm.io/gorm"
)

type implRepository struct {
	l  log.Logger
	db *gorm.DB
}

func New(l log.Logger, db *gorm.DB) repository.Repository {
	return &implRepository{
		l:  l,
		db: db,
	}
}
