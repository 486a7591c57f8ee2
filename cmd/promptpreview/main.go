// promptpreview prints the exact prompt YakYak would send for a message,
// and optionally performs one live provider call with it.
//
// Usage:
//
//	go run ./cmd/promptpreview -message "pls refactor auth b4 SSO" -from developer -to designer
//	go run ./cmd/promptpreview -message "..." -to-lang es -live
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"YakYak/pkg/config"
	svc "YakYak/pkg/services"
	"YakYak/pkg/translator"
)

func main() {
	message := flag.String("message", "", "message to rewrite (required)")
	fromRole := flag.String("from", translator.DefaultFromRole, "sender role code")
	toRole := flag.String("to", translator.DefaultToRole, "recipient role code")
	fromLang := flag.String("from-lang", "", "source language code (optional)")
	toLang := flag.String("to-lang", "", "target language code (optional)")
	feedback := flag.String("feedback", "", "feedback on a previous rewrite (optional)")
	live := flag.Bool("live", false, "also call the provider with the built prompt")
	flag.Parse()

	if *message == "" {
		fmt.Fprintln(os.Stderr, "error: -message is required")
		flag.Usage()
		os.Exit(2)
	}

	prompt := translator.BuildPrompt(translator.Request{
		OriginalMessage: *message,
		FromRole:        *fromRole,
		ToRole:          *toRole,
		FromLanguage:    translator.NormalizeLanguage(*fromLang),
		ToLanguage:      translator.NormalizeLanguage(*toLang),
		Feedback:        *feedback,
	})
	fmt.Println("----- prompt -----")
	fmt.Print(prompt)
	fmt.Println("------------------")

	if !*live {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(config.TranslateTimeoutSeconds)*time.Second)
	defer cancel()
	translated, err := svc.NewGeminiService().Rewrite(ctx, prompt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rewrite failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("----- rewritten -----")
	fmt.Println(translated)
}
