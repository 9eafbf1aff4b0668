package cli

import (
	"context"
	"fmt"
	"net/mail"
	"os"

	"github.com/pandonyx/fitsupply-cli/internal/client/models"
	"github.com/pandonyx/fitsupply-cli/internal/client/stores"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const minPasswordLen = 8

// printResult reports a failed action to the user, including per-field
// validation messages when the server supplied them.
func printResult(res stores.Result) {
	if res.OK {
		return
	}
	if res.Message != "" {
		fmt.Println(res.Message)
	}
	for field, msgs := range res.Fields {
		for _, msg := range msgs {
			fmt.Printf("  %s: %s\n", field, msg)
		}
	}
}

// Register prompts for account details, validates them locally, and creates
// the account. A successful registration logs the user in immediately.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Email address", os.Stdout)
	if err != nil {
		return err
	}
	if _, err := mail.ParseAddress(email); err != nil {
		fmt.Println("That does not look like a valid email address.")
		return nil
	}

	password, err := getPassword("Choose a password", os.Stdout)
	if err != nil {
		return err
	}
	if len(password) < minPasswordLen {
		fmt.Printf("Password must be at least %d characters.\n", minPasswordLen)
		return nil
	}

	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	if password != confirm {
		fmt.Println("Passwords do not match.")
		return nil
	}

	firstName, err := getSimpleText(a.reader, "First name (optional)", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name (optional)", os.Stdout)
	if err != nil {
		return err
	}

	res := a.auth.Register(ctx, models.Registration{
		Username:  username,
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if !res.OK {
		printResult(res)
		return nil
	}

	fmt.Printf("Account created. You are logged in as %s.\n", username)
	return nil
}

// Login prompts for credentials and authenticates. On success the server
// cart is fetched so the prompt shows the correct item count.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", os.Stdout)
	if err != nil {
		return err
	}

	res := a.auth.Login(ctx, models.Credentials{Username: username, Password: password})
	if !res.OK {
		printResult(res)
		return nil
	}

	fmt.Printf("Logged in as %s.\n", username)
	_ = a.cart.Fetch(ctx)
	return nil
}

// Logout ends the session and drops it from local storage.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		fmt.Println("Logout failed:", err)
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

// Profile shows the cached profile, refreshing it from the server first.
func (a *App) Profile(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	if !a.auth.FetchProfile(ctx) {
		fmt.Println("Your session has expired. Please log in again.")
		return nil
	}

	u := a.auth.User()
	fmt.Printf("Username:  %s\n", u.Username)
	fmt.Printf("Email:     %s\n", u.Email)
	fmt.Printf("Name:      %s %s\n", u.FirstName, u.LastName)
	return nil
}

// EditProfile prompts for new profile values; blank answers keep the
// current ones. The email shape is checked before anything is sent.
func (a *App) EditProfile(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	u := a.auth.User()
	var update models.ProfileUpdate

	email, err := getSimpleText(a.reader, fmt.Sprintf("Email [%s] (blank to keep)", u.Email), os.Stdout)
	if err != nil {
		return err
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			fmt.Println("That does not look like a valid email address.")
			return nil
		}
		update.Email = &email
	}

	firstName, err := getSimpleText(a.reader, fmt.Sprintf("First name [%s] (blank to keep)", u.FirstName), os.Stdout)
	if err != nil {
		return err
	}
	if firstName != "" {
		update.FirstName = &firstName
	}

	lastName, err := getSimpleText(a.reader, fmt.Sprintf("Last name [%s] (blank to keep)", u.LastName), os.Stdout)
	if err != nil {
		return err
	}
	if lastName != "" {
		update.LastName = &lastName
	}

	if update.Email == nil && update.FirstName == nil && update.LastName == nil {
		fmt.Println("Nothing to change.")
		return nil
	}

	res := a.auth.UpdateProfile(ctx, update)
	if !res.OK {
		printResult(res)
		return nil
	}
	fmt.Println("Profile updated.")
	return nil
}

func (a *App) requireLogin() bool {
	if a.isLoggedIn() {
		return true
	}
	fmt.Println("Please log in first ('login' or 'register').")
	return false
}
