package repository

import (
	"context"
	"fmt"
	"math"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	formsTable       = "forms"
	colID            = "id"
	colName          = "name"
	colEmail         = "email"
	colExtractedText = "extracted_text"
	colCreatedAt     = "created_at"
)

var formColumns = []string{colID, colName, colEmail, colExtractedText, colCreatedAt}

var (
	// FormsColumns holds the columns for the "forms" table.
	FormsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeUUID},
		{Name: colName, Type: field.TypeString},
		{Name: colEmail, Type: field.TypeString},
		{Name: colExtractedText, Type: field.TypeString, Size: math.MaxInt32},
		{Name: colCreatedAt, Type: field.TypeTime},
	}
	// FormsTable holds the schema information for the "forms" table.
	FormsTable = &schema.Table{
		Name:       formsTable,
		Columns:    FormsColumns,
		PrimaryKey: []*schema.Column{FormsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "form_created_at",
				Unique:  false,
				Columns: []*schema.Column{FormsColumns[4]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		FormsTable,
	}
)

// Migrate creates or updates the schema. Columns are only ever added.
func Migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("ent migrate: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
