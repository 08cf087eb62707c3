package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/tolatiles/tola-tiles-api/config"
	"github.com/tolatiles/tola-tiles-api/models"
)

func main() {
	root := &cobra.Command{
		Use:   "tilesadmin",
		Short: "Administrative tasks for the Tola Tiles API",
	}
	root.AddCommand(createAdminCmd())
	root.AddCommand(seedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// connect loads configuration, opens the database and runs migrations
func connect() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	config.SetConfig(cfg)

	if err := config.ConnectDatabase(); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	return models.AutoMigrate(config.GetDB())
}

func createAdminCmd() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a staff account for the admin dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := connect(); err != nil {
				return err
			}

			user := models.User{
				Username: username,
				Email:    email,
				IsStaff:  true,
			}
			if err := user.SetPassword(password); err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			if err := config.GetDB().Create(&user).Error; err != nil {
				if models.IsDuplicateErr(err) {
					return fmt.Errorf("username or email already taken")
				}
				return err
			}

			fmt.Printf("Created staff user %q (id %d)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username for the new account")
	cmd.Flags().StringVar(&email, "email", "", "email for the new account")
	cmd.Flags().StringVar(&password, "password", "", "password for the new account")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the catalog with sample data for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := connect(); err != nil {
				return err
			}
			return seed()
		},
	}
}

func seed() error {
	db := config.GetDB()
	catalog := models.NewCatalogRepository(db)
	projects := models.NewProjectRepository(db)

	pavers := models.ProductType{
		Name:         "Pavers",
		Description:  "Driveway and patio paver installations",
		IconName:     "pavers",
		Active:       true,
		ShowInNavbar: true,
	}
	if err := catalog.CreateProductType(&pavers); err != nil {
		return err
	}

	countertops := models.ProductType{
		Name:         "Countertops",
		Description:  "Granite, quartz and marble countertops",
		IconName:     "countertops",
		Active:       true,
		ShowInNavbar: true,
		DisplayOrder: 1,
	}
	if err := catalog.CreateProductType(&countertops); err != nil {
		return err
	}

	porcelain := models.TileCategory{
		Name:          "Porcelain",
		Description:   "Durable porcelain tiles for indoor and outdoor use",
		ProductTypeID: &pavers.ID,
		Active:        true,
	}
	if err := catalog.CreateCategory(&porcelain); err != nil {
		return err
	}

	tiles := []models.Tile{
		{
			Title:       "Travertine Classic",
			Description: "Tumbled travertine paver, ivory blend",
			CategoryID:  porcelain.ID,
			Price:       decimal.NewFromFloat(6.49),
			Size:        "6x12",
			Material:    "travertine",
			InStock:     true,
		},
		{
			Title:       "Slate Grey",
			Description: "Textured slate-look porcelain",
			CategoryID:  porcelain.ID,
			Price:       decimal.NewFromFloat(4.25),
			Size:        "12x24",
			Material:    "porcelain",
			InStock:     true,
		},
	}
	for i := range tiles {
		if err := catalog.CreateTile(&tiles[i]); err != nil {
			return err
		}
	}

	project := models.Project{
		Title:         "Lakeside Patio Renovation",
		Description:   "Full patio rebuild with travertine pavers",
		Client:        "Private residence",
		Location:      "Orlando, FL",
		CompletedDate: time.Now().AddDate(0, -2, 0),
		Status:        models.ProjectStatusCompleted,
		Featured:      true,
		ProductTypeID: &pavers.ID,
		AreaSize:      "850 sq ft",
	}
	if err := projects.CreateProject(&project); err != nil {
		return err
	}
	if err := projects.SetTilesUsed(project.ID, []uint{tiles[0].ID}); err != nil {
		return err
	}

	fmt.Println("Seed data created")
	return nil
}
