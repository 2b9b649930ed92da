package main

import (
	"bufio"
	"case_team_app_go/config"
	"case_team_app_go/db"
	"case_team_app_go/models"
	"case_team_app_go/services"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(db.Models()...); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Lawyer ===")
	fmt.Println()

	name := services.SanitizeText(prompt(reader, "Name: "))
	email := strings.ToLower(prompt(reader, "Email: "))
	rateStr := prompt(reader, "Default hourly rate: ")
	maxStr := prompt(reader, fmt.Sprintf("Max active assignments [%d]: ", models.DefaultMaxActiveAssignments))

	if name == "" || email == "" {
		log.Fatal("Name and email are required")
	}

	rate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil || rate < 0 {
		log.Fatalf("Invalid hourly rate: %q", rateStr)
	}

	lawyer := models.NewLawyer(name, email, rate)
	if maxStr != "" {
		limit, err := strconv.Atoi(maxStr)
		if err != nil || limit < 1 {
			log.Fatalf("Invalid max active assignments: %q", maxStr)
		}
		lawyer.MaxActiveAssignments = limit
	}

	// Check if lawyer already exists
	var existing models.User
	if err := db.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Fatalf("User with email %s already exists", email)
	}

	if err := db.DB.Create(lawyer).Error; err != nil {
		log.Fatalf("Failed to create lawyer: %v", err)
	}

	fmt.Println()
	fmt.Println("✓ Lawyer created successfully!")
	fmt.Printf("  ID: %s\n", lawyer.ID)
	fmt.Printf("  Name: %s\n", lawyer.Name)
	fmt.Printf("  Email: %s\n", lawyer.Email)
	fmt.Printf("  Rate: %.2f\n", lawyer.DefaultHourlyRate)
	fmt.Printf("  Max active assignments: %d\n", lawyer.MaxActiveAssignments)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
