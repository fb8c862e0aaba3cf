package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yuvalshat/project_butler/internal/agent/calendar"
	"github.com/yuvalshat/project_butler/internal/agent/chat"
	"github.com/yuvalshat/project_butler/internal/agent/tasks"
	"github.com/yuvalshat/project_butler/internal/config"
	"github.com/yuvalshat/project_butler/internal/contacts"
	"github.com/yuvalshat/project_butler/internal/conversation"
	"github.com/yuvalshat/project_butler/internal/database"
	"github.com/yuvalshat/project_butler/internal/gcal"
	"github.com/yuvalshat/project_butler/internal/llm"
	"github.com/yuvalshat/project_butler/internal/notify"
	"github.com/yuvalshat/project_butler/internal/server"
)

func main() {
	cfg := config.LoadFromEnv()

	db, err := database.New(cfg.DBPath)
	if err != nil {
		fatal("creating database", err)
	}
	defer db.Close()

	gcalClient, err := gcal.NewClient(cfg.GoogleCredentialsFile, db)
	if err != nil {
		fatal("creating google calendar client", err)
	}
	if gcalClient.IsAuthenticated() {
		fmt.Println("Google Calendar client authenticated")
	} else {
		fmt.Println("Google Calendar: not authenticated, visit /api/auth/url to connect")
	}

	llmClient := initLLMClient(cfg)
	notifyService := initNotifyService(cfg)

	directory := contacts.NewDirectory(gcalClient)

	calendarAgent := calendar.NewAgent(calendar.Config{
		Interpreter: llmClient,
		Calendar:    gcalClient,
		Contacts:    directory,
		Notify:      notifyService,
		Timezone:    cfg.Timezone,
	})
	chatAgent := chat.NewAgent(llmClient, nil)
	tasksAgent := tasks.NewAgent(llmClient, nil)

	session := conversation.NewSession()

	srv := server.New(server.Config{
		GCalClient:    gcalClient,
		Session:       session,
		CalendarAgent: calendarAgent,
		TasksAgent:    tasksAgent,
		ChatAgent:     chatAgent,
		Port:          cfg.HTTPPort,
	})
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "HTTP server error: %v\n", err)
		}
	}()

	waitForShutdown(srv)
}

func initLLMClient(cfg *config.Config) *llm.Client {
	if cfg.OpenAIAPIKey == "" {
		fmt.Println("Warning: OPENAI_API_KEY not set, message interpretation disabled")
	}
	return llm.NewClient(llm.Config{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.OpenAIModel,
		Temperature: cfg.OpenAITemperature,
	})
}

func initNotifyService(cfg *config.Config) *notify.Service {
	if cfg.ResendAPIKey == "" || cfg.NotifyEmail == "" {
		return nil
	}

	emailNotifier := notify.NewResendNotifier(cfg.ResendAPIKey, cfg.EmailFrom)
	if emailNotifier == nil || !emailNotifier.IsConfigured() {
		return nil
	}

	fmt.Println("Email confirmation service configured (Resend)")
	return notify.NewService(emailNotifier, cfg.NotifyEmail)
}

func fatal(context string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
	os.Exit(1)
}

func waitForShutdown(srv *server.Server) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	fmt.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv.Shutdown(ctx)
}
