package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-supermart-pos/internal/repository"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Agent answers natural-language questions about the shop using
// read-only tools. Mutations deliberately have no tool: every write
// must go through the audited transaction path.
type Agent struct {
	Products  *repository.ProductRepo
	Dashboard *repository.DashboardRepo
}

func NewAgent(products *repository.ProductRepo, dashboard *repository.DashboardRepo) *Agent {
	return &Agent{Products: products, Dashboard: dashboard}
}

// Run sends the user's message to Gemini, resolves at most one round
// of tool calls, and returns the model's answer.
func (a *Agent) Run(ctx context.Context, userMessage, apiKey string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")
	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the assistant for a supermarket POS system.

	RULES:
	1. INVENTORY: For PRICE, STOCK, or DETAILS of a product, call 'check_inventory' and read the JSON. Do NOT say you cannot get it.
	2. RESTOCKING: For what needs reordering, call 'list_low_stock'.
	3. SALES: For sales/revenue questions, use 'get_sales_report'.
	4. You cannot change prices, stock, or record sales. Tell the user to do that in the app.

	USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_inventory",
					Description: "Get the full inventory list. Use this to find ANY product details like ID, Name, Price, Stock, or minimum stock level.",
				},
				{
					Name:        "list_low_stock",
					Description: "List products whose stock is at or below their minimum level and need reordering.",
				},
				{
					Name:        "get_sales_report",
					Description: "Get total sales revenue and transaction count for a date range.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			switch funcCall.Name {
			case "check_inventory":
				return a.executeInventory(ctx, session, false)
			case "list_low_stock":
				return a.executeInventory(ctx, session, true)
			case "get_sales_report":
				return a.executeSalesReport(ctx, session, funcCall)
			}
		}
	}

	return printResponse(resp), nil
}

func (a *Agent) executeInventory(ctx context.Context, session *genai.ChatSession, lowOnly bool) (string, error) {
	var (
		products []productSummaryRow
		name     = "check_inventory"
	)

	if lowOnly {
		name = "list_low_stock"
		low, err := a.Products.LowStock()
		if err != nil {
			return "", err
		}
		for _, p := range low {
			products = append(products, summarize(p.ID, p.Name, p.Stock, p.MinStock, p.Price.String()))
		}
	} else {
		all, err := a.Products.List(repository.ProductFilter{})
		if err != nil {
			return "", err
		}
		for _, p := range all {
			products = append(products, summarize(p.ID, p.Name, p.Stock, p.MinStock, p.Price.String()))
		}
	}

	jsonBytes, _ := json.Marshal(products)
	resp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     name,
		Response: map[string]interface{}{"inventory": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}
	return printResponse(resp), nil
}

type productSummaryRow struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"min_stock"`
	Price    string `json:"price"`
}

func summarize(id uint, name string, stock, minStock int, price string) productSummaryRow {
	return productSummaryRow{ID: id, Name: name, Stock: stock, MinStock: minStock, Price: price}
}

func (a *Agent) executeSalesReport(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) (string, error) {
	args := funcCall.Args
	startStr, _ := args["start_date"].(string)
	endStr, _ := args["end_date"].(string)

	start, err1 := time.Parse("2006-01-02", startStr)
	end, err2 := time.Parse("2006-01-02", endStr)
	if err1 != nil || err2 != nil {
		return "Error: Dates must be in YYYY-MM-DD format.", nil
	}
	end = repository.EndOfDay(end)

	report, err := a.Dashboard.SalesReport(start, end)
	if err != nil {
		return "", err
	}

	resp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_sales_report",
		Response: map[string]interface{}{
			"revenue":     report.TotalRevenue.String(),
			"sales_count": report.TotalCount,
		},
	})
	if err != nil {
		return "", err
	}
	return printResponse(resp), nil
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
