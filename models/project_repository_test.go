package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateProjectDefaultsStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)

	project := Project{Title: "Lakeside Patio"}
	assert.NoError(t, repo.CreateProject(&project))
	assert.Equal(t, ProjectStatusCompleted, project.Status)
	assert.Equal(t, "lakeside-patio", project.Slug)
}

func TestCreateProjectRejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)

	err := repo.CreateProject(&Project{Title: "Broken", Status: "cancelled"})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "status", validationErr.Field)
}

func TestSetPrimaryProjectImageExclusive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)

	project := Project{Title: "Pool Deck"}
	assert.NoError(t, repo.CreateProject(&project))

	first := ProjectImage{ProjectID: project.ID, ImageKey: "projects/a.jpg", IsPrimary: true}
	second := ProjectImage{ProjectID: project.ID, ImageKey: "projects/b.jpg"}
	assert.NoError(t, repo.AddProjectImage(&first))
	assert.NoError(t, repo.AddProjectImage(&second))

	_, err := repo.SetPrimaryProjectImage(second.ID)
	assert.NoError(t, err)

	var primaries []ProjectImage
	assert.NoError(t, db.Where("project_id = ? AND is_primary = ?", project.ID, true).Find(&primaries).Error)
	assert.Len(t, primaries, 1)
	assert.Equal(t, second.ID, primaries[0].ID)
}

func TestSetTilesUsed(t *testing.T) {
	db := setupTestDB(t)
	catalog := NewCatalogRepository(db)
	repo := NewProjectRepository(db)

	category := TileCategory{Name: "Travertine", Active: true}
	assert.NoError(t, catalog.CreateCategory(&category))
	tileA := Tile{Title: "Ivory", CategoryID: category.ID}
	tileB := Tile{Title: "Walnut", CategoryID: category.ID}
	assert.NoError(t, catalog.CreateTile(&tileA))
	assert.NoError(t, catalog.CreateTile(&tileB))

	project := Project{Title: "Courtyard"}
	assert.NoError(t, repo.CreateProject(&project))

	assert.NoError(t, repo.SetTilesUsed(project.ID, []uint{tileA.ID, tileB.ID}))
	loaded, err := repo.ProjectByIDOrSlug("courtyard")
	assert.NoError(t, err)
	assert.Len(t, loaded.TilesUsed, 2)

	// Replacement, not accumulation
	assert.NoError(t, repo.SetTilesUsed(project.ID, []uint{tileB.ID}))
	loaded, err = repo.ProjectByIDOrSlug("courtyard")
	assert.NoError(t, err)
	assert.Len(t, loaded.TilesUsed, 1)
	assert.Equal(t, "Walnut", loaded.TilesUsed[0].Title)

	// Unknown tile ids are rejected
	err = repo.SetTilesUsed(project.ID, []uint{9999})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestDeleteProjectCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	testimonials := NewTestimonialRepository(db)

	project := Project{Title: "Driveway Rebuild"}
	assert.NoError(t, repo.CreateProject(&project))

	image := ProjectImage{ProjectID: project.ID, ImageKey: "projects/d.jpg"}
	assert.NoError(t, repo.AddProjectImage(&image))

	testimonial := CustomerTestimonial{
		CustomerName: "Dana",
		Testimonial:  "Great work",
		Rating:       5,
		ProjectID:    &project.ID,
	}
	assert.NoError(t, testimonials.CreateTestimonial(&testimonial, false))

	assert.NoError(t, repo.DeleteProject(project.ID))

	var imageCount, testimonialCount int64
	db.Model(&ProjectImage{}).Count(&imageCount)
	db.Model(&CustomerTestimonial{}).Count(&testimonialCount)
	assert.Zero(t, imageCount)
	assert.Zero(t, testimonialCount)
}

func TestListProjectsFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)

	older := Project{Title: "Old Patio", Featured: true, CompletedDate: time.Now().AddDate(-1, 0, 0)}
	assert.NoError(t, repo.CreateProject(&older))
	newer := Project{Title: "New Kitchen", Status: ProjectStatusInProgress, CompletedDate: time.Now()}
	assert.NoError(t, repo.CreateProject(&newer))

	featured := true
	projects, err := repo.ListProjects(ProjectFilters{Featured: &featured})
	assert.NoError(t, err)
	assert.Len(t, projects, 1)
	assert.Equal(t, "Old Patio", projects[0].Title)

	projects, err = repo.ListProjects(ProjectFilters{Status: ProjectStatusInProgress})
	assert.NoError(t, err)
	assert.Len(t, projects, 1)
	assert.Equal(t, "New Kitchen", projects[0].Title)

	// Default ordering is completed date, newest first
	projects, err = repo.ListProjects(ProjectFilters{})
	assert.NoError(t, err)
	assert.Len(t, projects, 2)
	assert.Equal(t, "New Kitchen", projects[0].Title)
}
