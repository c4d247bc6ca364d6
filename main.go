package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shandysiswandi/userlab/internal/app"
)

func main() {
	// userlab token <operator> prints a bearer token for the export endpoint
	if len(os.Args) == 3 && os.Args[1] == "token" {
		token, err := app.IssueToken(os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	application := app.New()    // Initialize the application
	wait := application.Start() // Start the application and wait for the termination signal
	<-wait                      // Wait for the application to receive a termination signal
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	application.Stop(ctx) // Stop the application gracefully
}
