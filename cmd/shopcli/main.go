package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	cartapp "github.com/al1ce23/shitshop/internal/cart/app"
	"github.com/al1ce23/shitshop/internal/cart/infra/filestore"
	"github.com/al1ce23/shitshop/internal/cart/infra/shopapi"
	"github.com/al1ce23/shitshop/internal/cart/infra/sqlite"
	catalogapp "github.com/al1ce23/shitshop/internal/catalog/app"
	catalogdomain "github.com/al1ce23/shitshop/internal/catalog/domain"
	checkoutapp "github.com/al1ce23/shitshop/internal/checkout/app"
	checkoutdomain "github.com/al1ce23/shitshop/internal/checkout/domain"
	checkoutadapter "github.com/al1ce23/shitshop/internal/checkout/infra/adapter"
	"github.com/al1ce23/shitshop/pkg/config"
	"github.com/al1ce23/shitshop/pkg/logger"
	"github.com/al1ce23/shitshop/pkg/shutdown"
)

const usage = `usage: shopcli <command> [args]

commands:
  products [category]   list products, optionally filtered
  cart                  show the cart
  add <id>              add one unit of a product
  inc <id> | dec <id>   change a quantity by one
  remove <id>           drop a line
  clear                 empty the cart
  checkout -name NAME -email EMAIL [-phone PHONE] [-address ADDRESS]
`

var errUsage = errors.New("invalid usage")

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "shopcli",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
		Output:  os.Stderr,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	if err := run(ctx, cfg, log, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type cli struct {
	cfg  config.Config
	log  *slog.Logger
	out  io.Writer
	shop *shopapi.Client
	view *textView
	cart *cartapp.Service
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	store, closeStore, err := openStore(ctx, cfg.Client)
	if err != nil {
		return err
	}
	defer closeStore()

	c := &cli{
		cfg:  cfg,
		log:  log,
		out:  out,
		shop: shopapi.New(cfg.Client.ShopURL, nil),
		view: newTextView(out, cfg.Shop.Currency),
	}
	c.cart = cartapp.NewService(nil, store, c.view, log)

	c.view.muted = true
	c.cart.Restore(ctx)
	c.view.muted = false

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "products":
		return c.products(ctx, rest)
	case "cart":
		c.view.Render(c.cart.Snapshot())
		return nil
	case "add":
		return c.add(ctx, rest)
	case "inc", "dec", "remove":
		if len(rest) != 1 {
			return errUsage
		}
		switch cmd {
		case "inc":
			return c.cart.UpdateQuantity(ctx, rest[0], 1)
		case "dec":
			return c.cart.UpdateQuantity(ctx, rest[0], -1)
		default:
			return c.cart.Remove(ctx, rest[0])
		}
	case "clear":
		return c.cart.Clear(ctx)
	case "checkout":
		return c.checkout(ctx, rest)
	default:
		return errUsage
	}
}

func openStore(ctx context.Context, cfg config.Client) (cartapp.Store, func(), error) {
	switch cfg.CartStore {
	case "", "file":
		s, err := filestore.New(cfg.CartPath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	case "sqlite":
		if err := os.MkdirAll(cfg.CartPath, 0o700); err != nil {
			return nil, nil, err
		}
		s, err := sqlite.Open(ctx, "file:"+filepath.Join(cfg.CartPath, "cart.db"))
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown cart store %q", cfg.CartStore)
	}
}

func (c *cli) products(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errUsage
	}
	listed, err := c.shop.ListProducts(ctx)
	if err != nil {
		return err
	}

	products := make([]catalogdomain.Product, 0, len(listed))
	for _, p := range listed {
		products = append(products, catalogdomain.Product{
			ID: p.ID, Name: p.Name, Price: p.Price, Description: p.Description, Category: p.Category, Image: p.Image,
		})
	}

	category := catalogapp.AllCategories
	if len(args) == 1 {
		category = args[0]
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tCATEGORY")
	for _, p := range catalogapp.FilterByCategory(products, category) {
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\n", p.ID, p.Name, p.Price.StringFixed(2), c.cfg.Shop.Currency, p.Category)
	}
	tw.Flush()
	fmt.Fprintf(c.out, "Categories: %s\n", strings.Join(catalogapp.Categories(products), ", "))
	return nil
}

func (c *cli) add(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	listed, err := c.shop.ListProducts(ctx)
	if err != nil {
		return err
	}
	catalog := shopapi.Catalog(listed)
	if _, ok := catalog.Lookup(args[0]); !ok {
		fmt.Fprintf(c.out, "No product with id %q\n", args[0])
		return nil
	}
	c.cart.SetCatalog(catalog)
	return c.cart.Add(ctx, args[0])
}

func (c *cli) checkout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var cust checkoutdomain.Customer
	fs.StringVar(&cust.Name, "name", "", "customer name")
	fs.StringVar(&cust.Email, "email", "", "customer email")
	fs.StringVar(&cust.Phone, "phone", "", "customer phone")
	fs.StringVar(&cust.Address, "address", "", "delivery address")
	if err := fs.Parse(args); err != nil || fs.NArg() > 0 {
		return errUsage
	}

	reader := checkoutadapter.NewCartServiceReader(c.cart)
	svc := checkoutapp.NewService(reader, reader, checkoutadapter.NewShopOrderSubmitter(c.shop), c.log)

	quote, err := svc.Quote(ctx)
	if errors.Is(err, checkoutapp.ErrEmptyCart) {
		fmt.Fprintln(c.out, "Your cart is empty!")
		return nil
	}
	if err != nil {
		return err
	}
	for _, ln := range quote.Lines {
		fmt.Fprintf(c.out, "%s x %d  %s %s\n", ln.Name, ln.Quantity, ln.LineTotal.StringFixed(2), c.cfg.Shop.Currency)
	}
	fmt.Fprintf(c.out, "Total: %s %s\n", quote.Total.StringFixed(2), c.cfg.Shop.Currency)

	conf, err := svc.Submit(ctx, cust)
	if err != nil {
		var apiErr *shopapi.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return errors.New(apiErr.Message)
		}
		return err
	}
	fmt.Fprintf(c.out, "%s (order %s)\n", conf.Message, conf.OrderID)
	return nil
}
