package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Products(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Categories(ctx context.Context) error
	Filter(ctx context.Context, arg string) error
	Product(ctx context.Context, idOrSlug string) error
	Cart(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Qty(ctx context.Context, args []string) error
	Remove(ctx context.Context, arg string) error
	ClearCart(ctx context.Context) error
	Checkout(ctx context.Context) error
	Orders(ctx context.Context) error
	Order(ctx context.Context, arg string) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the FitSupply CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Catalog commands work for guests; cart, checkout, orders, and profile
// commands require a login. Any errors returned by command handlers are
// ignored here; handlers print their own messages. This keeps the REPL loop
// resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("fs %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Catalog:  (p)roducts, search <text>, categories, filter [id], product <id|slug>")
			if a.isLoggedIn() {
				printlnFn("Shopping: cart, add <product> [qty], qty <item> <n>, remove <item>, clearcart, checkout")
				printlnFn("Account:  orders, order <id>, profile, editprofile, logout, exit")
			} else {
				printlnFn("Account:  register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "p", "products":
			_ = a.Products(ctx)

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "categories":
			_ = a.Categories(ctx)

		case "filter":
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			_ = a.Filter(ctx, arg)

		case "product":
			if len(args) == 0 {
				printlnFn("Usage: product <id|slug>")
				continue
			}
			_ = a.Product(ctx, args[0])

		case "cart":
			_ = a.Cart(ctx)

		case "add":
			_ = a.Add(ctx, args)

		case "qty":
			_ = a.Qty(ctx, args)

		case "remove":
			if len(args) == 0 {
				printlnFn("Usage: remove <item>")
				continue
			}
			_ = a.Remove(ctx, args[0])

		case "clearcart":
			_ = a.ClearCart(ctx)

		case "checkout":
			_ = a.Checkout(ctx)

		case "orders":
			_ = a.Orders(ctx)

		case "order":
			if len(args) == 0 {
				printlnFn("Usage: order <id>")
				continue
			}
			_ = a.Order(ctx, args[0])

		case "profile":
			_ = a.Profile(ctx)

		case "editprofile":
			_ = a.EditProfile(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
