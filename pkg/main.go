package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	pkg "github.com/pulsenet/pulse/pkg/internal"
	"github.com/pulsenet/pulse/pkg/internal/database"
	"github.com/pulsenet/pulse/pkg/internal/http"
	"github.com/pulsenet/pulse/pkg/internal/services"
	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString(" ____       _\n|  _ \\ _   _| |___  ___\n| |_) | | | | / __|/ _ \\\n|  __/| |_| | \\__ \\  __/\n|_|    \\__,_|_|___/\\___|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Pulse"), pkg.AppVersion)
	fmt.Printf("The multi-tenant social networking backend\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	viper.SetDefault("bind", "0.0.0.0:8443")
	viper.SetDefault("database.dsn", "sqlite://pulse.db")
	viper.SetDefault("defaults.page_size", 20)
	viper.SetDefault("defaults.max_page_size", 100)
	viper.SetDefault("content.detect_language", true)
	viper.SetDefault("content.max_length", 5000)
	viper.SetDefault("security.cookie_name", "pulse_session")
	viper.SetDefault("security.session_lifetime", 30*24*60*60)
	viper.SetDefault("security.admin_login", "admin")
	viper.SetDefault("security.admin_password", "admin123")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("No settings file found, using defaults...")
	}

	// Connect to database
	if err := database.NewGorm(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Seed the first administrator on a fresh database
	if err := services.EnsureFirstAdmin(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when seeding the admin account.")
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", services.DoAutoDatabaseCleanup)
	quartz.Start()

	// Server
	go http.NewServer().Listen()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
}
