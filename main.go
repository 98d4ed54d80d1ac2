package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/blindhunter/blindhunter/config"
	"github.com/blindhunter/blindhunter/database"
	"github.com/blindhunter/blindhunter/logger"
	"github.com/blindhunter/blindhunter/web"
	"github.com/blindhunter/blindhunter/web/service"

	"github.com/spf13/cobra"
)

func initDB() error {
	return database.Open(config.GetDatabaseConfig())
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	level, err := logger.ParseLevel(config.GetLogLevel())
	if err != nil {
		log.Fatal(err)
	}
	logger.InitLogger(level)
	defer logger.CloseLogger()

	if err := initDB(); err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			logger.Warning("close database err:", err)
		}
	}()

	server := web.NewServer()
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("Received SIGHUP, restarting web server...")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			logger.Info("Shutting down web server...")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func migrateDb() {
	if err := initDB(); err != nil {
		log.Fatal(err)
	}
	defer database.CloseDB()
	fmt.Println("Migration done!")
}

func addUser(username string, password string) {
	if err := initDB(); err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	userService := service.UserService{}
	if _, err := userService.Register(username, password); err != nil {
		fmt.Println("add user failed:", err)
		return
	}
	fmt.Printf("user %s added\n", username)
}

func resetPassword(username string, password string) {
	if err := initDB(); err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	userService := service.UserService{}
	if err := userService.UpdatePassword(username, password); err != nil {
		fmt.Println("reset password failed:", err)
		return
	}
	fmt.Printf("password of %s updated\n", username)
}

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Println(".env not loaded:", err)
	}

	var rootCmd = &cobra.Command{
		Use:   config.GetName(),
		Short: "Company reviews web application",
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Run: func(cmd *cobra.Command, args []string) {
			migrateDb()
		},
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.GetVersion())
		},
	}

	var userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	var addCmd = &cobra.Command{
		Use:   "add",
		Short: "Register a user",
		Run: func(cmd *cobra.Command, args []string) {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			addUser(username, password)
		},
	}
	addCmd.Flags().String("username", "", "login username")
	addCmd.Flags().String("password", "", "login password")
	_ = addCmd.MarkFlagRequired("username")
	_ = addCmd.MarkFlagRequired("password")

	var passwordCmd = &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password for a user",
		Run: func(cmd *cobra.Command, args []string) {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			resetPassword(username, password)
		},
	}
	passwordCmd.Flags().String("username", "", "login username")
	passwordCmd.Flags().String("password", "", "new password")
	_ = passwordCmd.MarkFlagRequired("username")
	_ = passwordCmd.MarkFlagRequired("password")

	userCmd.AddCommand(addCmd, passwordCmd)
	rootCmd.AddCommand(runCmd, migrateCmd, versionCmd, userCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
