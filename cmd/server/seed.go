package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/formlab/production-engine/catalog"
	"github.com/formlab/production-engine/inventory"
)

type seedStore interface {
	inventory.Store
	catalog.FormulaStore
	catalog.ClientStore
}

// seedDemoData inserts a small but workable data set: three stocked
// materials, one client, and one approved formula referencing them, so a
// fresh database can run the full batch lifecycle immediately.
func seedDemoData(ctx context.Context, store seedStore) error {
	now := time.Now()

	water := inventory.Material{
		ID:                   uuid.NewString(),
		Name:                 "Distilled Water",
		SKU:                  "AQ-001",
		Category:             "solvent",
		Supplier:             "AquaPure",
		Unit:                 inventory.UnitKilograms,
		UnitPrice:            decimal.NewFromFloat(0.80),
		CurrentStock:         decimal.NewFromInt(200),
		MinStock:             decimal.NewFromInt(20),
		MaxStock:             decimal.NewFromInt(500),
		INCIName:             "Aqua",
		SuitableForCosmetics: true,
		Status:               inventory.MaterialActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	glycerin := inventory.Material{
		ID:                   uuid.NewString(),
		Name:                 "Vegetable Glycerin",
		SKU:                  "GLY-001",
		Category:             "humectant",
		Supplier:             "ChemSupply",
		Unit:                 inventory.UnitKilograms,
		UnitPrice:            decimal.NewFromFloat(4.50),
		CurrentStock:         decimal.NewFromInt(25),
		MinStock:             decimal.NewFromInt(5),
		MaxStock:             decimal.NewFromInt(100),
		INCIName:             "Glycerin",
		CASNumber:            "56-81-5",
		SuitableForCosmetics: true,
		Certifications:       []string{"ECOCERT", "COSMOS"},
		Status:               inventory.MaterialActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	aloe := inventory.Material{
		ID:                   uuid.NewString(),
		Name:                 "Aloe Vera Extract",
		SKU:                  "ALO-010",
		Category:             "active",
		Supplier:             "BotanicalsCo",
		Unit:                 inventory.UnitKilograms,
		UnitPrice:            decimal.NewFromFloat(18.00),
		CurrentStock:         decimal.NewFromInt(8),
		MinStock:             decimal.NewFromInt(2),
		MaxStock:             decimal.NewFromInt(20),
		INCIName:             "Aloe Barbadensis Leaf Juice",
		SuitableForCosmetics: true,
		Status:               inventory.MaterialActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	for _, m := range []inventory.Material{water, glycerin, aloe} {
		if err := store.SaveMaterial(ctx, m); err != nil {
			return err
		}
	}

	client := catalog.Client{
		ID:        uuid.NewString(),
		Name:      "Verde Botanica",
		Company:   "Verde Botanica S.L.",
		Email:     "orders@verdebotanica.example",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.SaveClient(ctx, client); err != nil {
		return err
	}

	formula := catalog.Formula{
		ID:             uuid.NewString(),
		Name:           "Hydrating Aloe Gel",
		Version:        "1.2",
		Description:    "Lightweight daily gel",
		Category:       "skincare",
		ClientID:       client.ID,
		ClientName:     client.Name,
		BatchSizeGrams: decimal.NewFromInt(1000),
		Ingredients: []catalog.Ingredient{
			{
				ID:           uuid.NewString(),
				MaterialID:   water.ID,
				MaterialName: water.Name,
				MaterialSKU:  water.SKU,
				Phase:        "A",
				Percentage:   decimal.NewFromInt(90),
			},
			{
				ID:           uuid.NewString(),
				MaterialID:   glycerin.ID,
				MaterialName: glycerin.Name,
				MaterialSKU:  glycerin.SKU,
				Phase:        "A",
				Percentage:   decimal.NewFromInt(5),
			},
			{
				ID:           uuid.NewString(),
				MaterialID:   aloe.ID,
				MaterialName: aloe.Name,
				MaterialSKU:  aloe.SKU,
				Phase:        "B",
				Percentage:   decimal.NewFromInt(5),
			},
		},
		Steps: []catalog.ProductionStep{
			{ID: uuid.NewString(), StepNumber: 1, Phase: "A", Description: "Combine water phase, mix until uniform", MixingTime: 10},
			{ID: uuid.NewString(), StepNumber: 2, Phase: "B", Description: "Add actives below 40C, mix gently", MixingTime: 5},
		},
		Phases:      []string{"A", "B"},
		Status:      catalog.FormulaApproved,
		DevelopedBy: "lab",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	formula.RecomputeWeights()
	return store.SaveFormula(ctx, formula)
}
