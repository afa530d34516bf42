package main

import (
	"aftech-backend/database"
	"aftech-backend/repositories"
	"aftech-backend/services"
	"errors"
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

const (
	usernameFlag = "username"
	passwordFlag = "password"
	emailFlag    = "email"
	nameFlag     = "name"
	roleFlag     = "role"
	regionFlag   = "region"
)

var userCreateFlags = map[string]cobraflags.Flag{
	usernameFlag: &cobraflags.StringFlag{Name: usernameFlag, Usage: "Login name (required)"},
	passwordFlag: &cobraflags.StringFlag{Name: passwordFlag, Usage: "Initial password, at least 8 characters (required)"},
	emailFlag:    &cobraflags.StringFlag{Name: emailFlag, Usage: "Email address"},
	nameFlag:     &cobraflags.StringFlag{Name: nameFlag, Usage: "Display name"},
	roleFlag:     &cobraflags.StringFlag{Name: roleFlag, Value: "admin", Usage: "super_admin, admin or regional_manager"},
	regionFlag:   &cobraflags.IntFlag{Name: regionFlag, Usage: "Region id, required for regional_manager", ValidateFunc: notNegative},
}

func newUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage back office accounts",
	}
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user with a profile",
		RunE:  userCreateCommand,
	}
	cobraflags.RegisterMap(createCmd, userCreateFlags)
	cmd.AddCommand(createCmd)
	return cmd
}

func userCreateCommand(_ *cobra.Command, _ []string) error {
	input := services.CreateUserInput{
		Username: userCreateFlags[usernameFlag].GetString(),
		Password: userCreateFlags[passwordFlag].GetString(),
		Email:    userCreateFlags[emailFlag].GetString(),
		Name:     userCreateFlags[nameFlag].GetString(),
		Role:     userCreateFlags[roleFlag].GetString(),
	}
	if input.Username == "" || input.Password == "" {
		return errors.New("--username and --password are required")
	}
	region, err := optionalID(regionFlag, userCreateFlags[regionFlag])
	if err != nil {
		return err
	}
	input.Region = region

	db, err := openDB()
	if err != nil {
		return err
	}
	defer database.Close(db)

	user, err := services.NewUserService(repositories.NewUserRepository(db)).CreateUser(input)
	if err != nil {
		return err
	}
	fmt.Printf("user %s created with id %d\n", user.Username, user.ID)
	return nil
}
