package integration

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/tolatiles/tola-tiles-api/config"
	"github.com/tolatiles/tola-tiles-api/models"
	"github.com/tolatiles/tola-tiles-api/tests/testutil"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// CatalogIntegrationTestSuite exercises the repository layer across entity
// boundaries: product type deletion semantics, category cascades, and
// project/tile associations working together.
type CatalogIntegrationTestSuite struct {
	suite.Suite
	db       *gorm.DB
	catalog  *models.CatalogRepository
	projects *models.ProjectRepository
}

func (suite *CatalogIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
}

func (suite *CatalogIntegrationTestSuite) SetupTest() {
	testutil.RequireTestEnvironment(suite.T())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.NoError(err)
	suite.NoError(models.AutoMigrate(db))
	suite.db = db
	config.SetDB(db)

	suite.catalog = models.NewCatalogRepository(db)
	suite.projects = models.NewProjectRepository(db)
}

func (suite *CatalogIntegrationTestSuite) TestFullCatalogBranchLifecycle() {
	pavers := models.ProductType{Name: "Pavers", Active: true}
	suite.NoError(suite.catalog.CreateProductType(&pavers))

	travertine := models.TileCategory{Name: "Travertine", ProductTypeID: &pavers.ID, Active: true}
	suite.NoError(suite.catalog.CreateCategory(&travertine))

	ivory := models.Tile{
		Title:      "Ivory Blend",
		CategoryID: travertine.ID,
		Price:      decimal.NewFromFloat(6.49),
	}
	suite.NoError(suite.catalog.CreateTile(&ivory))
	suite.NoError(suite.catalog.AddTileImage(&models.TileImage{
		TileID: ivory.ID, ImageKey: "tiles/ivory.jpg", IsPrimary: true,
	}))

	patio := models.Project{Title: "Patio Build", ProductTypeID: &pavers.ID}
	suite.NoError(suite.projects.CreateProject(&patio))
	suite.NoError(suite.projects.SetTilesUsed(patio.ID, []uint{ivory.ID}))

	// Deleting the product type detaches everything but deletes nothing
	suite.NoError(suite.catalog.DeleteProductType(pavers.ID))

	var tileCount, categoryCount, projectCount int64
	suite.db.Model(&models.Tile{}).Count(&tileCount)
	suite.db.Model(&models.TileCategory{}).Count(&categoryCount)
	suite.db.Model(&models.Project{}).Count(&projectCount)
	suite.Equal(int64(1), tileCount)
	suite.Equal(int64(1), categoryCount)
	suite.Equal(int64(1), projectCount)

	// Deleting the category removes the tile, its image, and its project link
	suite.NoError(suite.catalog.DeleteCategory(travertine.ID))

	var imageCount, linkCount int64
	suite.db.Model(&models.TileImage{}).Count(&imageCount)
	suite.db.Table("project_tiles").Count(&linkCount)
	suite.db.Model(&models.Tile{}).Count(&tileCount)
	suite.Zero(tileCount)
	suite.Zero(imageCount)
	suite.Zero(linkCount)

	// The project itself survives
	loaded, err := suite.projects.ProjectByIDOrSlug("patio-build")
	suite.NoError(err)
	suite.Empty(loaded.TilesUsed)
}

func (suite *CatalogIntegrationTestSuite) TestSlugNamespacesAreIndependent() {
	// The same name may exist as a product type, a category, and a tile;
	// slugs only collide within an entity type
	pt := models.ProductType{Name: "Marble", Active: true}
	suite.NoError(suite.catalog.CreateProductType(&pt))

	category := models.TileCategory{Name: "Marble", Active: true}
	suite.NoError(suite.catalog.CreateCategory(&category))

	tile := models.Tile{Title: "Marble", CategoryID: category.ID}
	suite.NoError(suite.catalog.CreateTile(&tile))

	suite.Equal("marble", pt.Slug)
	suite.Equal("marble", category.Slug)
	suite.Equal("marble", tile.Slug)

	duplicate := models.TileCategory{Name: "Marble", Active: true}
	suite.NoError(suite.catalog.CreateCategory(&duplicate))
	suite.Equal("marble-2", duplicate.Slug)
}

func TestCatalogIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogIntegrationTestSuite))
}
