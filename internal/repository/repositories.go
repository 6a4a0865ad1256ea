// Package repository is the soft-delete-aware persistence layer. Every read
// goes through gorm's default scope, which filters rows whose DeletedAt is
// set; no repository ever calls Unscoped, so handlers have no way to see a
// deleted row. Multi-row mutations run inside Atomic.
package repository

import "gorm.io/gorm"

type Repositories struct {
	db *gorm.DB

	Users      *UserRepository
	Roles      *RoleRepository
	Posts      *PostRepository
	Comments   *CommentRepository
	Categories *CategoryRepository
	Slides     *SlideRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		db:         db,
		Users:      &UserRepository{db: db},
		Roles:      &RoleRepository{db: db},
		Posts:      &PostRepository{db: db},
		Comments:   &CommentRepository{db: db},
		Categories: &CategoryRepository{db: db},
		Slides:     &SlideRepository{db: db},
	}
}

// Atomic runs fn inside one transaction: commit on nil, rollback and
// propagate on error. The Repositories handed to fn are bound to the
// transaction, so all related writes of a mutation share its fate.
func (r *Repositories) Atomic(fn func(tx *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
