package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ProjectRepository owns portfolio mutations: projects, their images and the
// tiles-used association.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// ProjectFilters are the recognized project list filters
type ProjectFilters struct {
	Featured    *bool
	Status      string
	ProductType string // id or slug
	Search      string
}

// CreateProject validates and persists a new project, deriving the slug from
// the title when not supplied
func (r *ProjectRepository) CreateProject(project *Project) error {
	if strings.TrimSpace(project.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if project.Status == "" {
		project.Status = ProjectStatusCompleted
	}
	if !ValidProjectStatus(project.Status) {
		return &ValidationError{Field: "status", Message: "status must be planning, in_progress or completed"}
	}
	if project.ProductTypeID != nil {
		var count int64
		if err := r.db.Model(&ProductType{}).Where("id = ?", *project.ProductTypeID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &ValidationError{Field: "product_type", Message: "product type does not exist"}
		}
	}
	if project.Slug == "" {
		slug, err := uniqueSlug(r.db, &Project{}, project.Title)
		if err != nil {
			return err
		}
		project.Slug = slug
	}
	if err := r.db.Create(project).Error; err != nil {
		if IsDuplicateErr(err) {
			return NewDuplicateError("slug")
		}
		return err
	}
	return nil
}

// ProjectByIDOrSlug resolves a project with its relations from an id or slug token
func (r *ProjectRepository) ProjectByIDOrSlug(token string) (*Project, error) {
	var project Project
	query := r.db.Preload("ProductType").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, created_at ASC")
		}).
		Preload("TilesUsed").
		Preload("TilesUsed.Images").
		Preload("Testimonials")
	if err := findByIDOrSlug(query, token, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// ListProjects returns projects ordered by completed date, newest first
func (r *ProjectRepository) ListProjects(filters ProjectFilters) ([]Project, error) {
	query := r.db.Model(&Project{}).Preload("ProductType").Preload("Images").
		Preload("Testimonials")
	if filters.Featured != nil {
		query = query.Where("featured = ?", *filters.Featured)
	}
	if filters.Status != "" {
		if !ValidProjectStatus(filters.Status) {
			return nil, &ValidationError{Field: "status", Message: "unrecognized status filter"}
		}
		query = query.Where("status = ?", filters.Status)
	}
	if filters.ProductType != "" {
		var pt ProductType
		if err := findByIDOrSlug(r.db, filters.ProductType, &pt); err != nil {
			return nil, err
		}
		query = query.Where("product_type_id = ?", pt.ID)
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(client) LIKE ? OR LOWER(location) LIKE ?",
			pattern, pattern, pattern, pattern)
	}

	var projects []Project
	if err := query.Order("completed_date DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateProject applies a partial update, re-validating only changed fields.
// The slug is immutable.
func (r *ProjectRepository) UpdateProject(id uint, updates map[string]interface{}) (*Project, error) {
	delete(updates, "slug")

	var project Project
	if err := r.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if status, ok := updates["status"].(string); ok && !ValidProjectStatus(status) {
		return nil, &ValidationError{Field: "status", Message: "status must be planning, in_progress or completed"}
	}
	if len(updates) > 0 {
		if err := r.db.Model(&project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &project, nil
}

// DeleteProject removes a project with its images, testimonials and tile
// associations
func (r *ProjectRepository) DeleteProject(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var project Project
		if err := tx.First(&project, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&ProjectImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&CustomerTestimonial{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_tiles WHERE project_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}

// SetTilesUsed replaces the project's tiles-used association
func (r *ProjectRepository) SetTilesUsed(projectID uint, tileIDs []uint) error {
	var project Project
	if err := r.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	var tiles []Tile
	if len(tileIDs) > 0 {
		if err := r.db.Where("id IN ?", tileIDs).Find(&tiles).Error; err != nil {
			return err
		}
		if len(tiles) != len(tileIDs) {
			return &ValidationError{Field: "tiles_used", Message: "one or more tiles do not exist"}
		}
	}
	return r.db.Model(&project).Association("TilesUsed").Replace(tiles)
}

// AddProjectImage attaches an uploaded image asset to a project
func (r *ProjectRepository) AddProjectImage(image *ProjectImage) error {
	if image.ImageKey == "" {
		return &ValidationError{Field: "image", Message: "image is required"}
	}
	var count int64
	if err := r.db.Model(&Project{}).Where("id = ?", image.ProjectID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &ValidationError{Field: "project", Message: "project does not exist"}
	}
	return r.db.Create(image).Error
}

// ProjectImageByID resolves a project image by id
func (r *ProjectRepository) ProjectImageByID(id uint) (*ProjectImage, error) {
	var image ProjectImage
	if err := r.db.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &image, nil
}

// DeleteProjectImage removes a project image row and returns it so the caller
// can clean up the stored asset
func (r *ProjectRepository) DeleteProjectImage(id uint) (*ProjectImage, error) {
	image, err := r.ProjectImageByID(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Delete(image).Error; err != nil {
		return nil, err
	}
	return image, nil
}

// SetPrimaryProjectImage flags the given image as the project's primary image
// and clears the flag on all siblings within a single transaction
func (r *ProjectRepository) SetPrimaryProjectImage(imageID uint) (*ProjectImage, error) {
	var image ProjectImage
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&image, imageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&ProjectImage{}).
			Where("project_id = ? AND id <> ?", image.ProjectID, image.ID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Model(&image).Update("is_primary", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &image, nil
}
