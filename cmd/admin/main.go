package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/classpress/forumcore/internal/bootstrap"
	"github.com/classpress/forumcore/internal/config"
	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/internal/repository"
	"github.com/classpress/forumcore/internal/service"
	"github.com/classpress/forumcore/pkg/database"
	"gorm.io/gorm"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db     *gorm.DB
	usrSvc service.UserService
	accSvc service.AccessService
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	codeRepo := repository.NewCodeRepository(db)

	cli := &commandLine{
		db:     db,
		usrSvc: service.NewUserService(userRepo, cfg.PlainPasswords),
		accSvc: service.NewAccessService(codeRepo, cfg.CodeTTL, nil),
	}

	if err := cli.run(os.Args); err != nil {
		if errors.Is(err, errHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate                                    - create/update the schema")
	fmt.Println("  seed                                       - seed the default thread")
	fmt.Println("  sweep                                      - delete expired invitation codes and passcodes")
	fmt.Println("  adduser -username U -email E -password P [-roles Admin,Student,Staff]")
	fmt.Println("  invite -email E -role R                    - issue an invitation code")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()

	switch args[1] {
	case "migrate":
		if err := bootstrap.Migrate(cli.db); err != nil {
			return err
		}
		log.Println("schema up to date")
		return nil

	case "seed":
		if err := bootstrap.SeedDefaults(cli.db); err != nil {
			return err
		}
		log.Println("defaults seeded")
		return nil

	case "sweep":
		if err := cli.accSvc.SweepExpired(ctx); err != nil {
			return err
		}
		log.Println("expired codes swept")
		return nil

	case "adduser":
		return cli.addUser(ctx, args[2:])

	case "invite":
		return cli.invite(ctx, args[2:])

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) addUser(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	username := cmd.String("username", "", "account username")
	email := cmd.String("email", "", "account email")
	password := cmd.String("password", "", "account password")
	roles := cmd.String("roles", "", "comma-separated roles (Admin, Student, Staff)")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *username == "" || *email == "" || *password == "" {
		cmd.Usage()
		return errHelp
	}

	input := service.RegisterInput{
		Username: *username,
		Email:    *email,
		Password: *password,
	}
	for _, role := range strings.Split(*roles, ",") {
		if role = strings.TrimSpace(role); role != "" {
			input.Roles = append(input.Roles, model.Role(role))
		}
	}

	user, err := cli.usrSvc.Register(ctx, input)
	if err != nil {
		return err
	}
	log.Printf("created user %s", user.Username)
	return nil
}

func (cli *commandLine) invite(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("invite", flag.ExitOnError)
	email := cmd.String("email", "", "invitee email")
	role := cmd.String("role", string(model.RoleStudent), "role bound to the code")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		cmd.Usage()
		return errHelp
	}

	code, err := cli.accSvc.IssueInvitation(ctx, *email, model.Role(*role))
	if err != nil {
		return err
	}
	fmt.Println(code)
	return nil
}
