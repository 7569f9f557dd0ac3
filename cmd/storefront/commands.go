package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tutienda/storefront/internal/api"
	"github.com/tutienda/storefront/internal/auth"
	"github.com/tutienda/storefront/internal/cart"
	"github.com/tutienda/storefront/internal/catalog"
	"github.com/tutienda/storefront/internal/checkout"
	"github.com/tutienda/storefront/internal/orders"
	"github.com/tutienda/storefront/internal/session"
	"github.com/tutienda/storefront/pkg/config"
	"github.com/tutienda/storefront/pkg/enums"
	pkgerrors "github.com/tutienda/storefront/pkg/errors"
	"github.com/tutienda/storefront/pkg/logger"
	"golang.org/x/term"
)

const usage = `usage: storefront <command> [args]

commands:
  products                    list the catalog
  product <id>                show one article
  cart add <id> [qty]         add an article to the cart
  cart update <id> <qty>      set a line's quantity
  cart remove <id>            drop a line
  cart show                   print the cart
  cart clear                  empty the cart
  shipping                    list provinces and payment methods
  login <email>               sign in (password prompted)
  register                    create an account
  logout                      sign out
  checkout                    submit the cart as an order
  orders                      list your past orders
  sales                       list all orders (admin)
`

type cli struct {
	cfg      *config.Config
	logg     *logger.Logger
	cart     *cart.Manager
	sessions *session.Manager
	backend  *api.Client
	catalog  catalog.Service
	orders   orders.Service
	auth     auth.Service
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}
	switch cmd, rest := args[0], args[1:]; cmd {
	case "products":
		return c.runProducts(ctx)
	case "product":
		return c.runProduct(ctx, rest)
	case "cart":
		return c.runCart(ctx, rest)
	case "shipping":
		return c.runShipping(ctx)
	case "login":
		return c.runLogin(ctx, rest)
	case "register":
		return c.runRegister(ctx)
	case "logout":
		c.auth.Logout(ctx)
		fmt.Println("signed out")
		return nil
	case "checkout":
		return c.runCheckout(ctx, rest)
	case "orders":
		return c.runOrders(ctx)
	case "sales":
		return c.runSales(ctx)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (c *cli) runProducts(ctx context.Context) error {
	articles, err := c.catalog.List(ctx)
	if err != nil {
		return err
	}
	for _, article := range articles {
		fmt.Printf("%4d  %-30s  $%-10s stock %d\n", article.ID, article.Name, article.Price, article.Stock)
	}
	return nil
}

func (c *cli) runProduct(ctx context.Context, args []string) error {
	id, err := intArg(args, 0, "article id")
	if err != nil {
		return err
	}
	article, err := c.catalog.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("%d  %s\n%s\nprice $%s, stock %d\n", article.ID, article.Name, article.Description, article.Price, article.Stock)
	for _, category := range article.Categories {
		fmt.Printf("  category: %s\n", category.Name)
	}
	return nil
}

func (c *cli) runCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("cart needs a subcommand: add|update|remove|show|clear")
	}
	switch sub, rest := args[0], args[1:]; sub {
	case "add":
		id, err := intArg(rest, 0, "article id")
		if err != nil {
			return err
		}
		quantity := 1
		if len(rest) > 1 {
			if quantity, err = intArg(rest, 1, "quantity"); err != nil {
				return err
			}
		}
		added, err := c.catalog.AddToCart(ctx, id, quantity)
		if err != nil {
			return err
		}
		if added == 0 {
			fmt.Println("no stock left for that article")
			return nil
		}
		if added < quantity {
			fmt.Printf("only %d in stock, added %d\n", added, added)
		}
		return c.printCart()
	case "update":
		id, err := intArg(rest, 0, "article id")
		if err != nil {
			return err
		}
		quantity, err := intArg(rest, 1, "quantity")
		if err != nil {
			return err
		}
		if err := c.cart.UpdateQuantity(ctx, id, quantity); err != nil {
			return err
		}
		return c.printCart()
	case "remove":
		id, err := intArg(rest, 0, "article id")
		if err != nil {
			return err
		}
		c.cart.RemoveItem(ctx, id)
		return c.printCart()
	case "show":
		return c.printCart()
	case "clear":
		c.cart.Clear(ctx)
		fmt.Println("cart emptied")
		return nil
	default:
		return fmt.Errorf("unknown cart subcommand %q", sub)
	}
}

func (c *cli) printCart() error {
	lines := c.cart.Lines()
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return nil
	}
	for _, line := range lines {
		fmt.Printf("%4d  %-30s  %3d x $%-8s = $%s\n",
			line.ArticleID, line.Name, line.Quantity, line.UnitPrice, line.Subtotal())
	}
	fmt.Printf("total: $%s\n", c.cart.Total())
	return nil
}

func (c *cli) runShipping(ctx context.Context) error {
	provinces, err := c.backend.ListProvinces(ctx)
	if err != nil {
		return err
	}
	fmt.Println("provinces:")
	for _, province := range provinces {
		fmt.Printf("  %3d  %-25s shipping $%s\n", province.ID, province.Description, province.ShippingCost)
	}
	methods, err := c.backend.ListPaymentMethods(ctx)
	if err != nil {
		return err
	}
	fmt.Println("payment methods:")
	for _, method := range methods {
		fmt.Printf("  %3d  %s\n", method.ID, method.Description)
	}
	return nil
}

func (c *cli) runLogin(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: storefront login <email>")
	}
	password, err := promptPassword("password: ")
	if err != nil {
		return err
	}
	sess, err := c.auth.Login(ctx, auth.Credentials{Email: args[0], Password: password})
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s (%s)\n", sess.UserName, sess.Role)
	return nil
}

func (c *cli) runRegister(ctx context.Context) error {
	reader := bufio.NewReader(os.Stdin)
	name, err := promptLine(reader, "name: ")
	if err != nil {
		return err
	}
	email, err := promptLine(reader, "email: ")
	if err != nil {
		return err
	}
	password, err := promptPassword("password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("confirm password: ")
	if err != nil {
		return err
	}
	if err := c.auth.Register(ctx, auth.Registration{
		Name:            name,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	}); err != nil {
		return err
	}
	fmt.Println("account created, you can sign in now")
	return nil
}

func (c *cli) runCheckout(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("checkout", flag.ContinueOnError)
	provinceID := flags.Int("province", 0, "province id")
	localityID := flags.Int("locality", 0, "locality id")
	methodID := flags.Int("method", 0, "payment method id")
	address := flags.String("address", "", "shipping address")
	if err := flags.Parse(args); err != nil {
		return err
	}

	shippingCost, err := c.shippingCost(ctx, *provinceID)
	if err != nil {
		return err
	}

	quote := checkout.NewQuote(c.cart.Lines(), shippingCost)
	fmt.Printf("subtotal $%s + shipping $%s = $%s\n", quote.Subtotal, quote.Shipping, quote.Total)

	confirmation, err := c.orders.Submit(ctx, checkout.ShippingSelection{
		ProvinceID:      *provinceID,
		LocalityID:      *localityID,
		PaymentMethodID: *methodID,
		Address:         *address,
		ShippingCost:    shippingCost,
	})
	if err != nil {
		return err
	}
	fmt.Printf("order %d confirmed, total $%s\n", confirmation.OrderNumber, confirmation.Total)

	return c.runPayment(confirmation)
}

// shippingCost looks the province's cost up from the backend; the selection
// never trusts a client-supplied amount.
func (c *cli) shippingCost(ctx context.Context, provinceID int) (decimal.Decimal, error) {
	if provinceID <= 0 {
		return decimal.Zero, pkgerrors.Validation(pkgerrors.ReasonMissingShipping, "a province is required")
	}
	provinces, err := c.backend.ListProvinces(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	for _, province := range provinces {
		if province.ID == provinceID {
			return province.ShippingCost, nil
		}
	}
	return decimal.Zero, pkgerrors.New(pkgerrors.CodeNotFound, "unknown province")
}

// runPayment walks the simulated QR flow on the terminal.
func (c *cli) runPayment(confirmation *api.OrderConfirmation) error {
	attempt := checkout.NewAttempt(confirmation.OrderNumber, confirmation.Total, c.cfg.Checkout, nil)
	qr, err := attempt.QR()
	if err != nil {
		return err
	}
	fmt.Printf("scan to pay (valid %s):\n%s\n", attempt.Remaining().Round(time.Second), qr)
	fmt.Print("press enter once scanned... ")
	if _, err := bufio.NewReader(os.Stdin).ReadString('\n'); err != nil {
		return err
	}
	if err := attempt.Scan(); err != nil {
		return err
	}
	for attempt.State() == enums.PaymentStateProcessing {
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Printf("payment %s\n", attempt.State())
	return nil
}

func (c *cli) runOrders(ctx context.Context) error {
	history, err := c.orders.History(ctx)
	if err != nil {
		return err
	}
	printOrders(history)
	return nil
}

func (c *cli) runSales(ctx context.Context) error {
	sales, err := c.orders.SalesHistory(ctx)
	if err != nil {
		return err
	}
	printOrders(sales)
	return nil
}

func printOrders(list []api.Order) {
	if len(list) == 0 {
		fmt.Println("no orders")
		return
	}
	for _, order := range list {
		buyer := ""
		if order.User != nil {
			buyer = "  " + order.User.Name
		}
		fmt.Printf("#%d  %s  $%s%s\n", order.OrderNumber, order.CreatedAt.Format("2006-01-02"), order.Total, buyer)
		for _, line := range order.Lines {
			name := strconv.Itoa(line.ArticleID)
			if line.Article != nil {
				name = line.Article.Name
			}
			fmt.Printf("    %3d x %-30s $%s\n", line.Quantity, name, line.SubTotal)
		}
	}
}

func intArg(args []string, index int, name string) (int, error) {
	if index >= len(args) {
		return 0, fmt.Errorf("%s is required", name)
	}
	value, err := strconv.Atoi(args[index])
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return value, nil
}

func promptLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
