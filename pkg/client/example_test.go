package client_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pratik-mahalle/numera/pkg/client"
)

// Example demonstrates basic usage of the Numera client
func Example() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:3001",
	})

	ctx := context.Background()

	// Login
	loginResp, err := c.Login(ctx, "user@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Logged in as: %s\n", loginResp.User.Email)

	// Generate a report
	rep, err := c.Reports().Generate(ctx, client.GenerateRequest{
		FullName:    "Jane Doe",
		DateOfBirth: "1990-01-15",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Life path number: %d\n", rep.Result.LifePathNumber)
}

// ExampleReportService_History demonstrates paging through past reports
func ExampleReportService_History() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:3001",
		Token:   "token-from-a-previous-login",
	})

	page, err := c.Reports().History(context.Background(), &client.ListOptions{Page: 1, Limit: 20})
	if err != nil {
		log.Fatal(err)
	}

	for _, rep := range page.Reports {
		fmt.Printf("%s %s\n", rep.ID, rep.CreatedAt.Format("2006-01-02"))
	}
	fmt.Printf("Page %d of %d\n", page.Pagination.Page, page.Pagination.Pages)
}

// ExampleAPIError demonstrates handling an exhausted quota
func ExampleAPIError() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:3001",
		Token:   "token-from-a-previous-login",
	})

	_, err := c.Reports().Generate(context.Background(), client.GenerateRequest{
		FullName:    "Jane Doe",
		DateOfBirth: "1990-01-15",
	})

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.IsQuotaExceeded() {
		fmt.Println("Query limit reached, upgrade your plan")
	}
}
