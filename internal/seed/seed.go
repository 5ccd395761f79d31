// Package seed populates the database with the initial sample data.
package seed

import (
	"fmt"
	"log"
	"time"

	"kiroku/internal/models"

	"gorm.io/gorm"
)

// Seed populates the database with one category and three sample todos.
func Seed(db *gorm.DB) error {
	log.Println("Starting database seeding...")

	category := models.Category{Name: "買い物"}
	if err := db.Create(&category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	log.Printf("Created category %q", category.Name)

	todos := []models.Todo{
		{
			Title:       "買い物リスト1",
			Description: "牛乳、パン、卵を買う",
			DueDate:     time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
			Priority:    models.PriorityHigh,
			Completed:   false,
			Categories:  []models.Category{category},
		},
		{
			Title:       "買い物リスト2",
			Description: "野菜、果物を買う",
			DueDate:     time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC),
			Priority:    models.PriorityMedium,
			Completed:   false,
			Categories:  []models.Category{category},
		},
		{
			Title:       "買い物リスト3",
			Description: "洗剤、トイレットペーパーを買う",
			DueDate:     time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC),
			Priority:    models.PriorityLow,
			Completed:   false,
			Categories:  []models.Category{category},
		},
	}
	for i := range todos {
		if err := db.Create(&todos[i]).Error; err != nil {
			return fmt.Errorf("failed to create todo %q: %w", todos[i].Title, err)
		}
	}
	log.Printf("Created %d todos", len(todos))

	log.Println("Database seeding completed successfully")
	return nil
}

// ClearAll deletes existing rows in foreign-key order.
func ClearAll(db *gorm.DB) error {
	tables := []string{
		"replies",
		"comments",
		"post_categories",
		"posts",
		"todo_categories",
		"todos",
		"categories",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
