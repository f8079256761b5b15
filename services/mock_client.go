package services

import (
	"context"
	"project_analysis_backend/models"
)

// MockExtractionClient answers every segment with the same canned analysis.
type MockExtractionClient struct{}

func NewMockExtractionClient() *MockExtractionClient {
	return &MockExtractionClient{}
}

func (c *MockExtractionClient) Name() string { return "mock" }

func (c *MockExtractionClient) Extract(ctx context.Context, _ string, _ bool) (*models.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return mockAnalysis(), nil
}

// mockAnalysis builds a fresh value each call so callers may mutate it.
func mockAnalysis() *models.AnalysisResult {
	return &models.AnalysisResult{
		ProjectName: "Mock Project",
		Description: "This is a mock project generated for testing purposes.",
		Phases: []models.Phase{
			{Name: "Phase 1", Description: "Initial setup and planning"},
			{Name: "Phase 2", Description: "Development and implementation"},
			{Name: "Phase 3", Description: "Testing and deployment"},
		},
		Personas: []models.Persona{
			{
				Name:        "End User",
				Description: "Primary user of the application",
				Goals:       []string{"Ease of use", "Efficiency", "Reliability"},
				PainPoints:  []string{"Complex interfaces", "Slow performance", "Bugs and errors"},
			},
		},
		Requirements: []string{
			"User authentication system",
			"Responsive design for all devices",
			"Data visualization capabilities",
			"Export functionality",
			"User settings and preferences",
		},
	}
}
