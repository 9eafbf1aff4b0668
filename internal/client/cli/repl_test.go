package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  []string
}

func (f *fakeExec) record(name string, args ...string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, strings.Join(args, " "))
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	return f.record("register")
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Products(context.Context) error { return f.record("products") }
func (f *fakeExec) Search(_ context.Context, query string) error {
	return f.record("search", query)
}
func (f *fakeExec) Categories(context.Context) error { return f.record("categories") }
func (f *fakeExec) Filter(_ context.Context, arg string) error {
	return f.record("filter", arg)
}
func (f *fakeExec) Product(_ context.Context, idOrSlug string) error {
	return f.record("product", idOrSlug)
}
func (f *fakeExec) Cart(context.Context) error { return f.record("cart") }
func (f *fakeExec) Add(_ context.Context, args []string) error {
	return f.record("add", args...)
}
func (f *fakeExec) Qty(_ context.Context, args []string) error {
	return f.record("qty", args...)
}
func (f *fakeExec) Remove(_ context.Context, arg string) error {
	return f.record("remove", arg)
}
func (f *fakeExec) ClearCart(context.Context) error   { return f.record("clearcart") }
func (f *fakeExec) Checkout(context.Context) error    { return f.record("checkout") }
func (f *fakeExec) Orders(context.Context) error      { return f.record("orders") }
func (f *fakeExec) Order(_ context.Context, arg string) error {
	return f.record("order", arg)
}
func (f *fakeExec) Profile(context.Context) error     { return f.record("profile") }
func (f *fakeExec) EditProfile(context.Context) error { return f.record("editprofile") }

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPL_ShoppingFlow(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"products",
		"search whey protein",
		"login",
		"add 1 2",
		"cart",
		"checkout",
		"orders",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	wantOrder := []string{"products", "search", "login", "add", "cart", "checkout", "orders"}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_ArgsPassedThrough(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"search creatine monohydrate",
		"product whey-protein-vanilla",
		"add 3 2",
		"qty 7 5",
		"remove 7",
		"order 42",
		"filter 2",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(input))

	want := map[string]string{
		"search":  "creatine monohydrate",
		"product": "whey-protein-vanilla",
		"add":     "3 2",
		"qty":     "7 5",
		"remove":  "7",
		"order":   "42",
		"filter":  "2",
	}
	for i, call := range exec.calls {
		if wantArg, ok := want[call]; ok && exec.args[i] != wantArg {
			t.Fatalf("%s: got args %q, want %q", call, exec.args[i], wantArg)
		}
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	silencePrintln(t)

	// Commands missing their required argument print usage without
	// dispatching.
	input := strings.NewReader("product\nremove\norder\nquit\n")
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_EOFTerminates(t *testing.T) {
	silencePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("")))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
