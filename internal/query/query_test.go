package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type listedCar struct {
	ID                 uint `gorm:"primaryKey"`
	RegistrationNumber string
	BrandID            uint
	Status             string
	CreatedAt          time.Time
}

var carDefinition = Definition{
	SearchColumns: []string{"registration_number"},
	FilterColumns: map[string]string{
		"brand":  "brand_id",
		"status": "status",
	},
	SortColumns: map[string]string{
		"createdAt": "created_at",
	},
	DefaultSortColumn: "created_at",
	DefaultDescending: true,
}

func setupQueryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&listedCar{}))
	return db
}

func TestBuildDefaults(t *testing.T) {
	opts := carDefinition.Build(map[string]string{})

	require.Equal(t, 1, opts.Page)
	require.Equal(t, DefaultLimit, opts.Limit)
	require.Equal(t, 0, opts.Skip)
	require.Equal(t, "created_at", opts.SortColumn)
	require.True(t, opts.Descending)
	require.Empty(t, opts.Search)
	require.Empty(t, opts.Conditions)
}

func TestBuildMalformedPaginationFallsBack(t *testing.T) {
	opts := carDefinition.Build(map[string]string{"page": "banana", "limit": "-3"})

	require.Equal(t, 1, opts.Page)
	require.Equal(t, DefaultLimit, opts.Limit)
}

func TestBuildExplicitDefaultsMatchOmitted(t *testing.T) {
	omitted := carDefinition.Build(map[string]string{})
	explicit := carDefinition.Build(map[string]string{"page": "1", "limit": "10"})

	require.Equal(t, omitted, explicit)
}

func TestBuildClampsLimit(t *testing.T) {
	opts := carDefinition.Build(map[string]string{"limit": "100000"})
	require.Equal(t, MaxLimit, opts.Limit)
}

func TestBuildSkipDerivedFromPage(t *testing.T) {
	opts := carDefinition.Build(map[string]string{"page": "3", "limit": "25"})
	require.Equal(t, 50, opts.Skip)
	require.Equal(t, 25, opts.Limit)
}

func TestBuildSortAllowList(t *testing.T) {
	opts := carDefinition.Build(map[string]string{"sortBy": "createdAt", "sortOrder": "desc"})
	require.Equal(t, "created_at", opts.SortColumn)
	require.True(t, opts.Descending)

	// unknown sortBy keeps the default column
	opts = carDefinition.Build(map[string]string{"sortBy": "password_hash"})
	require.Equal(t, "created_at", opts.SortColumn)

	// anything but asc/desc maps to ascending
	opts = carDefinition.Build(map[string]string{"sortOrder": "sideways"})
	require.False(t, opts.Descending)
}

func TestBuildIgnoresUnknownParams(t *testing.T) {
	opts := carDefinition.Build(map[string]string{"owner_secret": "1", "brand": "7"})

	require.Len(t, opts.Conditions, 1)
	require.Equal(t, Condition{Column: "brand_id", Value: "7"}, opts.Conditions[0])
}

func TestBuildBlankSearchIsAbsent(t *testing.T) {
	opts := carDefinition.Build(map[string]string{"search": "   "})
	require.Empty(t, opts.Search)
}

func TestOrderClauseTieBreaksOnID(t *testing.T) {
	opts := carDefinition.Build(map[string]string{})
	require.Equal(t, "created_at DESC, id DESC", opts.OrderClause())

	opts = carDefinition.Build(map[string]string{"sortOrder": "asc"})
	require.Equal(t, "created_at ASC, id ASC", opts.OrderClause())
}

func TestApplyCombinesSearchAndFilters(t *testing.T) {
	db := setupQueryTestDB(t)

	// search "ka" matches A, B, C; brand filter matches B, C, D; combined
	// result must be exactly {B, C}.
	seed := []listedCar{
		{RegistrationNumber: "KA-01-A", BrandID: 1, Status: "in_stock"},
		{RegistrationNumber: "KA-02-B", BrandID: 2, Status: "in_stock"},
		{RegistrationNumber: "KA-03-C", BrandID: 2, Status: "in_stock"},
		{RegistrationNumber: "MH-04-D", BrandID: 2, Status: "in_stock"},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	opts := carDefinition.Build(map[string]string{"search": "ka", "brand": "2"})

	var matches []listedCar
	require.NoError(t, opts.Apply(db.Model(&listedCar{})).Order(opts.OrderClause()).Find(&matches).Error)

	require.Len(t, matches, 2)
	plates := []string{matches[0].RegistrationNumber, matches[1].RegistrationNumber}
	require.ElementsMatch(t, []string{"KA-02-B", "KA-03-C"}, plates)
}

func TestApplyPaginationReproducesFullSet(t *testing.T) {
	db := setupQueryTestDB(t)

	for i := 0; i < 23; i++ {
		car := listedCar{RegistrationNumber: fmt.Sprintf("KA-%02d", i), BrandID: 1, Status: "in_stock"}
		require.NoError(t, db.Create(&car).Error)
	}

	seen := map[uint]bool{}
	collected := 0
	for page := 1; ; page++ {
		opts := carDefinition.Build(map[string]string{
			"page":  fmt.Sprintf("%d", page),
			"limit": "7",
		})

		var batch []listedCar
		require.NoError(t, opts.ApplyOrdered(db.Model(&listedCar{})).Find(&batch).Error)
		if len(batch) == 0 {
			break
		}

		for _, car := range batch {
			require.False(t, seen[car.ID], "car %d returned twice", car.ID)
			seen[car.ID] = true
		}
		collected += len(batch)
	}

	require.Equal(t, 23, collected)
}
