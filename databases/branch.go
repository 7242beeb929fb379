package databases

// go generate: mockery --name BranchDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carepoint/clinic-api/models"
)

const branchCollection = "branches"

// BranchDatabase contains the methods to use with the branch database
type BranchDatabase interface {
	FindByID(ctx context.Context, id string) (*models.Branch, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Branch, error)
}

type branchDatabase struct {
	db DatabaseHelper
}

// NewBranchDatabase initializes a new instance of branch database with the provided db connection
func NewBranchDatabase(db DatabaseHelper) BranchDatabase {
	return &branchDatabase{
		db: db,
	}
}

func (b *branchDatabase) FindByID(ctx context.Context, id string) (*models.Branch, error) {
	branch := &models.Branch{}
	err := b.db.Collection(branchCollection).FindOne(ctx, bson.M{"_id": id}).Decode(branch)
	if err != nil {
		return nil, wrapStoreError("findOne", branchCollection, err)
	}
	return branch, nil
}

func (b *branchDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Branch, error) {
	var branches []models.Branch
	cur, err := b.db.Collection(branchCollection).Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapStoreError("find", branchCollection, err)
	}
	err = cur.Decode(&branches)
	if err != nil {
		return nil, wrapStoreError("decode", branchCollection, err)
	}
	return branches, nil
}
