package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rfxintake/internal/model"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database("rfxintake")
	formColl := db.Collection("intake_forms")

	userID := "end_user_demo"
	start := time.Now().AddDate(0, 1, 0)
	end := start.AddDate(0, 3, 0)

	form := model.IntakeForm{
		UserID:          userID,
		Title:           "IT Asset Management Consulting Services",
		Background:      "Our department needs consulting services to modernize IT asset tracking across three regional offices. The current spreadsheet-based process causes duplicate purchases and audit findings.",
		CommodityType:   "Professional Services",
		StartDate:       &start,
		EndDate:         &end,
		EstimatedValue:  95000,
		BudgetTolerance: model.BudgetModerate,
		Status:          model.FormDraft,
		Deliverables: []model.Deliverable{
			{
				ID:          uuid.NewString(),
				Name:        "Current State Assessment",
				Description: "Review of existing asset tracking processes and systems across all offices.",
				Selected:    true,
			},
			{
				ID:          uuid.NewString(),
				Name:        "Implementation Roadmap",
				Description: "Phased plan for rolling out a centralized asset management system.",
				Selected:    true,
			},
			{
				ID:          uuid.NewString(),
				Name:        "Staff Training Sessions",
				Description: "Hands-on training for asset custodians in each regional office.",
				Selected:    true,
			},
		},
		Requirements: model.Requirements{
			Mandatory: []model.Requirement{
				{
					ID:          uuid.NewString(),
					Name:        "Bilingual service delivery",
					Description: "Vendor must deliver training and documentation in English and French.",
					Type:        "mandatory",
				},
			},
			Rated: []model.Requirement{
				{
					ID:          uuid.NewString(),
					Name:        "Relevant project experience",
					Description: "Demonstrated experience with public sector asset management projects.",
					Type:        "rated",
					Weight:      20,
					Scale:       "0-100 points",
				},
				{
					ID:          uuid.NewString(),
					Name:        "Proposed approach",
					Description: "Quality and feasibility of the proposed methodology.",
					Type:        "rated",
					Weight:      20,
					Scale:       "0-100 points",
				},
				{
					ID:          uuid.NewString(),
					Name:        "Team qualifications",
					Description: "Qualifications of the proposed project team.",
					Type:        "rated",
					Weight:      20,
					Scale:       "0-100 points",
				},
			},
			PriceWeight: 40,
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	result, err := formColl.InsertOne(ctx, form)
	if err != nil {
		log.Fatalf("Failed to insert form: %v", err)
	}

	fmt.Printf("Successfully created demo intake form '%s' for user '%s' (%v)\n", form.Title, userID, result.InsertedID)
}
