package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"studyquiz"
)

func main() {
	settings := studyquiz.LoadSettings()
	studyquiz.SetVerbose(settings.Verbose)

	if err := settings.Params.Validate(); err != nil {
		log.Fatalf("Invalid parameters: %v", err)
	}

	lex, err := studyquiz.OpenLexicon(settings.LexiconPath)
	if err != nil {
		log.Fatalf("Failed to load lexicon: %v", err)
	}

	store, err := studyquiz.LoadCorpus(context.Background(), settings, lex)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}
	stats := store.Stats()
	log.Printf("Corpus loaded: %d presentations, %d summaries, %d paragraphs",
		stats.PresentationCount, stats.SummaryCount, stats.TotalParagraphs)

	cookies := sessions.NewCookieStore([]byte(settings.SessionKey))
	cookies.Options.HttpOnly = true

	server, err := NewServer(store, lex, settings, cookies)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	defer server.Close()

	stop := make(chan struct{})
	defer close(stop)
	go server.sweep(time.Minute, stop)

	addr := fmt.Sprintf(":%d", settings.Port)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, server.Routes()))
}
