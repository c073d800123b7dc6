package command

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	xrate "golang.org/x/time/rate"

	"github.com/frezcirno/Rudis/internal/resp"
)

// BenchCommand returns the bench subcommand.
func BenchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Run a sequential SET workload against the server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "requests",
				Aliases: []string{"n"},
				Usage:   "Number of requests to issue",
				Value:   10000,
			},
			&cli.IntFlag{
				Name:  "rate",
				Usage: "Request rate limit in ops/sec (0 = unlimited)",
			},
			&cli.IntFlag{
				Name:  "key-length",
				Usage: "Length of the random lowercase keys",
				Value: 5,
			},
			&cli.StringFlag{
				Name:  "value",
				Usage: "Value written for every key",
				Value: "myvalue",
			},
		},
		Action: benchAction,
	}
}

func benchAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	client, err := dial(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	requests := c.Int("requests")
	keyLen := c.Int("key-length")
	value := c.String("value")

	var limiter *xrate.Limiter
	if r := c.Int("rate"); r > 0 {
		limiter = xrate.NewLimiter(xrate.Limit(r), r)
	}

	var errReplies int
	start := time.Now()

	for i := 0; i < requests; i++ {
		if limiter != nil {
			if err := limiter.Wait(c.Context); err != nil {
				return err
			}
		}

		key, err := randomKey(keyLen)
		if err != nil {
			return fmt.Errorf("generate key: %w", err)
		}

		v, err := client.DoStrings("SET", key, value)
		if err != nil {
			return fmt.Errorf("request %d: %w", i+1, err)
		}
		if v.Type == resp.TypeError {
			errReplies++
		}
	}

	elapsed := time.Since(start)
	fmt.Fprintf(c.App.Writer, "%d requests completed in %.2f seconds (%.0f ops/sec)\n",
		requests, elapsed.Seconds(), float64(requests)/elapsed.Seconds())
	if errReplies > 0 {
		fmt.Fprintf(c.App.Writer, "%d requests were answered with an error reply\n", errReplies)
	}
	return nil
}

// randomKey returns a random lowercase key of length n.
func randomKey(n int) (string, error) {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"

	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(b), nil
}
