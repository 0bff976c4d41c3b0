package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction-client/internal/bidding"
	"auction-client/internal/config"
	"auction-client/internal/lifecycle"
	model "auction-client/internal/models"
	"auction-client/internal/repository"
	"auction-client/internal/server"
	"auction-client/internal/timeleft"
	"auction-client/internal/watch"
	"auction-client/services/auction/client"
	"auction-client/utils"

	"github.com/shopspring/decimal"
)

func main() {
	stub := flag.Bool("stub", false, "run against an embedded stub backend with sample auctions")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		utils.SetVerbose()
	}

	cfg := config.Load()

	if *stub {
		baseURL, token, userID, err := startStubBackend()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start stub backend: %v\n", err)
			os.Exit(1)
		}
		cfg.BaseURL = baseURL
		cfg.Token = token
		cfg.UserID = userID
	}

	if cfg.UserID == "" {
		fmt.Fprintln(os.Stderr, "AUCTION_USER_ID is required (or pass -stub)")
		os.Exit(1)
	}

	cli := client.New(cfg.BaseURL,
		client.WithToken(cfg.Token),
		client.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
	)

	fmt.Printf("Watching auctions for user %s on %s...\n", cfg.UserID, cfg.BaseURL)

	// Collection watcher keeps the user's listings classified and printed.
	collection := watch.Start(
		func(ctx context.Context) ([]model.Auction, error) {
			return cli.GetUserAuctions(ctx, cfg.UserID)
		},
		printBuckets,
		cfg.CollectionInterval,
	)

	// Follow one open listing at the faster detail cadence, and in stub mode
	// place a bid on it so the collection view shows an active auction.
	var detail *watch.Handle[model.Auction]
	if watched, ok := pickOpenAuction(cli, cfg.UserID); ok {
		if *stub {
			placeDemoBid(cli, watched)
		}
		detail = watch.Start(
			func(ctx context.Context) (model.Auction, error) {
				return cli.GetAuction(ctx, watched.AuctionID)
			},
			printDetail,
			cfg.DetailInterval,
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	if detail != nil {
		detail.Stop()
	}
	collection.Stop()
	fmt.Println("Stopped.")
}

// pickOpenAuction returns the first of the user's auctions that has not ended
func pickOpenAuction(cli *client.Client, userID string) (model.Auction, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	auctions, err := cli.GetUserAuctions(ctx, userID)
	if err != nil {
		utils.Warn("could not list auctions for detail view", map[string]any{"error": err.Error()})
		return model.Auction{}, false
	}
	now := time.Now().UTC()
	for _, a := range auctions {
		if !a.Ended(now) {
			return a, true
		}
	}
	return model.Auction{}, false
}

// placeDemoBid submits the minimum acceptable bid on the given auction
func placeDemoBid(cli *client.Client, a model.Auction) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	amount := bidding.MinimumNextBid(a)
	if _, err := cli.PlaceBid(ctx, a.AuctionID, amount); err != nil {
		utils.Warn("demo bid rejected", map[string]any{"auction_id": a.AuctionID, "error": err.Error()})
		return
	}
	fmt.Printf("Placed demo bid of $%s on %q\n", amount.StringFixed(2), a.Title)
}

// printDetail prints the followed auction's latest state
func printDetail(a model.Auction) {
	now := time.Now().UTC()
	next := bidding.MinimumNextBid(a)
	fmt.Printf("  detail: %-28s [%s] %d bids, next bid from $%s, %s\n",
		a.Title, lifecycle.StatusOf(a, now), len(a.Bids), next.StringFixed(2), timeleft.Until(a.EndTime, now))
}

// printBuckets classifies a fresh snapshot and prints the listing summary
func printBuckets(auctions []model.Auction) {
	now := time.Now().UTC()
	buckets := lifecycle.Classify(auctions, now)

	fmt.Printf("\nActive (%d)  Completed (%d)  Pending (%d)\n",
		len(buckets.Active), len(buckets.Completed), len(buckets.Pending))
	for _, a := range auctions {
		price := a.StartingPrice
		if a.CurrentBid != nil {
			price = *a.CurrentBid
		}
		fmt.Printf("  [%s] %-28s $%-10s %s\n",
			lifecycle.StatusOf(a, now), a.Title, price.StringFixed(2), timeleft.Until(a.EndTime, now))
	}
}

// startStubBackend serves the in-memory backend on a loopback port, seeds it
// with sample listings, and mints a demo credential.
func startStubBackend() (baseURL, token, userID string, err error) {
	store := repository.NewMemoryStore()
	userID = "demo-user"
	seedAuctions(store, userID)

	tokens := server.NewTokenIssuer([]byte("stub-backend-secret"))
	token, err = tokens.Mint(userID, time.Hour)
	if err != nil {
		return "", "", "", err
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", "", "", err
	}

	router := server.SetupRouter(store, tokens)
	go func() {
		if serveErr := http.Serve(listener, router); serveErr != nil {
			utils.Error("stub backend stopped", map[string]any{"error": serveErr.Error()})
		}
	}()

	return "http://" + listener.Addr().String(), token, userID, nil
}

// seedAuctions adds sample listings to the stub store
func seedAuctions(store *repository.MemoryStore, sellerID string) {
	now := time.Now().UTC()
	samples := []model.Auction{
		{
			Title:            "Vintage Watch Collection",
			Description:      "Rare collection of vintage watches from the 1960s",
			StartingPrice:    decimal.NewFromInt(1000),
			MinimumIncrement: decimal.NewFromInt(50),
			EndTime:          now.Add(5 * 24 * time.Hour),
			SellerID:         sellerID,
		},
		{
			Title:            "Gaming Console Bundle",
			Description:      "Console with 5 popular games included",
			StartingPrice:    decimal.NewFromInt(300),
			MinimumIncrement: decimal.NewFromInt(10),
			EndTime:          now.Add(90 * time.Minute),
			SellerID:         sellerID,
		},
		{
			Title:            "Antique Furniture Set",
			Description:      "Victorian-era furniture set in excellent condition",
			StartingPrice:    decimal.NewFromInt(2500),
			MinimumIncrement: decimal.NewFromInt(100),
			EndTime:          now.Add(-2 * time.Hour),
			SellerID:         sellerID,
		},
	}

	for _, a := range samples {
		if _, err := store.CreateAuction(a); err != nil {
			utils.Warn("failed to seed auction", map[string]any{"title": a.Title, "error": err.Error()})
		}
	}
}
