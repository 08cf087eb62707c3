package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tolatiles/tola-tiles-api/config"
	"github.com/tolatiles/tola-tiles-api/models"
	"github.com/tolatiles/tola-tiles-api/services"
)

// CreateProjectRequest is the payload for creating a project
type CreateProjectRequest struct {
	Title         string     `json:"title" binding:"required"`
	Description   string     `json:"description"`
	Client        string     `json:"client"`
	Location      string     `json:"location"`
	CompletedDate *time.Time `json:"completed_date"`
	Status        string     `json:"status"`
	Featured      *bool      `json:"featured"`
	ProductTypeID *uint      `json:"product_type"`
	AreaSize      string     `json:"area_size"`
	Testimonial   string     `json:"testimonial"`
	TileIDs       []uint     `json:"tiles_used"`
}

// UpdateProjectRequest is the payload for partial project updates
type UpdateProjectRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Client        *string    `json:"client"`
	Location      *string    `json:"location"`
	CompletedDate *time.Time `json:"completed_date"`
	Status        *string    `json:"status"`
	Featured      *bool      `json:"featured"`
	ProductTypeID *uint      `json:"product_type"`
	AreaSize      *string    `json:"area_size"`
	Testimonial   *string    `json:"testimonial"`
	TileIDs       []uint     `json:"tiles_used"`
}

// ListProjects handles GET /projects
func ListProjects(c *gin.Context) {
	repo := models.NewProjectRepository(config.GetDB())
	projects, err := repo.ListProjects(models.ProjectFilters{
		Featured:    boolQuery(c, "featured"),
		Status:      c.Query("status"),
		ProductType: c.Query("product_type"),
		Search:      c.Query("search"),
	})
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	responses := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, toProjectResponse(&projects[i]))
	}
	respondData(c, http.StatusOK, responses)
}

// GetProject handles GET /projects/:id (id or slug)
func GetProject(c *gin.Context) {
	repo := models.NewProjectRepository(config.GetDB())
	project, err := repo.ProjectByIDOrSlug(c.Param("id"))
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, toProjectDetailResponse(project))
}

// CreateProject handles POST /projects (staff)
func CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	project := models.Project{
		Title:         req.Title,
		Description:   req.Description,
		Client:        req.Client,
		Location:      req.Location,
		Status:        req.Status,
		ProductTypeID: req.ProductTypeID,
		AreaSize:      req.AreaSize,
		Testimonial:   req.Testimonial,
	}
	if req.CompletedDate != nil {
		project.CompletedDate = *req.CompletedDate
	}
	if req.Featured != nil {
		project.Featured = *req.Featured
	}

	repo := models.NewProjectRepository(config.GetDB())
	if err := repo.CreateProject(&project); err != nil {
		respondRepositoryError(c, err)
		return
	}
	if len(req.TileIDs) > 0 {
		if err := repo.SetTilesUsed(project.ID, req.TileIDs); err != nil {
			respondRepositoryError(c, err)
			return
		}
	}
	respondData(c, http.StatusCreated, toProjectResponse(&project))
}

// UpdateProject handles PUT /projects/:id (staff)
func UpdateProject(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid project ID")
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Client != nil {
		updates["client"] = *req.Client
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.CompletedDate != nil {
		updates["completed_date"] = *req.CompletedDate
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}
	if req.ProductTypeID != nil {
		updates["product_type_id"] = *req.ProductTypeID
	}
	if req.AreaSize != nil {
		updates["area_size"] = *req.AreaSize
	}
	if req.Testimonial != nil {
		updates["testimonial"] = *req.Testimonial
	}

	repo := models.NewProjectRepository(config.GetDB())
	project, err := repo.UpdateProject(id, updates)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	if req.TileIDs != nil {
		if err := repo.SetTilesUsed(id, req.TileIDs); err != nil {
			respondRepositoryError(c, err)
			return
		}
	}
	respondData(c, http.StatusOK, toProjectResponse(project))
}

// DeleteProject handles DELETE /projects/:id (staff).
// Images, testimonials and tile associations go with it.
func DeleteProject(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid project ID")
		return
	}

	repo := models.NewProjectRepository(config.GetDB())
	if err := repo.DeleteProject(id); err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// UploadProjectImage handles POST /projects/:id/images (staff, multipart)
func UploadProjectImage(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid project ID")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "No image file provided")
		return
	}

	key, err := services.GetImageService().UploadImage(fileHeader, "projects")
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	image := models.ProjectImage{
		ProjectID: id,
		ImageKey:  key,
		Caption:   c.PostForm("caption"),
		IsPrimary: c.PostForm("is_primary") == "true",
	}

	repo := models.NewProjectRepository(config.GetDB())
	if err := repo.AddProjectImage(&image); err != nil {
		respondRepositoryError(c, err)
		return
	}
	if image.IsPrimary {
		if _, err := repo.SetPrimaryProjectImage(image.ID); err != nil {
			respondRepositoryError(c, err)
			return
		}
	}
	respondData(c, http.StatusCreated, toProjectImageResponse(&image))
}

// SetPrimaryProjectImage handles POST /project-images/:id/set-primary (staff)
func SetPrimaryProjectImage(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid image ID")
		return
	}

	repo := models.NewProjectRepository(config.GetDB())
	image, err := repo.SetPrimaryProjectImage(id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, toProjectImageResponse(image))
}

// DeleteProjectImage handles DELETE /project-images/:id (staff)
func DeleteProjectImage(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid image ID")
		return
	}

	repo := models.NewProjectRepository(config.GetDB())
	image, err := repo.DeleteProjectImage(id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	if svc := services.GetImageService(); svc != nil {
		_ = svc.DeleteImage(image.ImageKey)
	}
	respondData(c, http.StatusOK, gin.H{"message": "Image deleted successfully"})
}
