package seed

import (
	"log"

	"Inkwell/api/models"

	"gorm.io/gorm"
)

var users = []models.User{
	{
		Username: "steven",
		Email:    "steven@example.com",
		Password: "password",
	},
	{
		Username: "martin",
		Email:    "luther@example.com",
		Password: "password",
	},
}

var groups = []models.Group{
	{
		Title:       "Travel",
		Slug:        "travel",
		Description: "Places worth writing home about",
	},
	{
		Title:       "Cooking",
		Slug:        "cooking",
		Description: "Recipes and kitchen experiments",
	},
}

var posts = []models.Post{
	{
		Text: "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.",
	},
	{
		Text: "Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat.",
	},
}

// Load drops and recreates demo data. Meant for local runs only.
func Load(db *gorm.DB) {
	err := db.Migrator().DropTable(
		&models.Follow{},
		&models.Comment{},
		&models.Post{},
		&models.Group{},
		&models.User{},
	)
	if err != nil {
		log.Fatalf("cannot drop tables: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
	if err != nil {
		log.Fatalf("cannot migrate tables: %v", err)
	}

	for i := range groups {
		groups[i].Prepare()
		if errs := groups[i].Validate(); len(errs) > 0 {
			log.Fatalf("invalid seed group %q: %v", groups[i].Slug, errs)
		}
		if _, err := groups[i].SaveGroup(db); err != nil {
			log.Fatalf("cannot seed groups table: %v", err)
		}
	}

	for i := range users {
		users[i].Prepare()
		if _, err := users[i].SaveUser(db); err != nil {
			log.Fatalf("cannot seed users table: %v", err)
		}

		posts[i].Prepare()
		posts[i].AuthorID = users[i].ID
		posts[i].GroupID = &groups[i].ID
		if _, err := posts[i].SavePost(db); err != nil {
			log.Fatalf("cannot seed posts table: %v", err)
		}
	}
}
