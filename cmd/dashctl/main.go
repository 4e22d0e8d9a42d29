package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"iot-dashboard/internal/client"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	server string
	role   string
	lang   string
	search string
	debug  bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "dashctl",
		Short:         "IoT dashboard command-line client",
		Long:          `Logs in to an iot-dashboard server with a demo role, prints one page as a table and logs out.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.server, "server", envOr("DASHBOARD_URL", "http://localhost:8080"), "dashboard server URL")
	pf.StringVar(&opts.role, "role", "admin", "demo role: super-admin, admin or customer")
	pf.StringVar(&opts.lang, "lang", "", "Accept-Language sent with every request")
	pf.StringVar(&opts.search, "q", "", "free-text search")
	pf.BoolVar(&opts.debug, "debug", false, "log API calls to stderr")

	root.AddCommand(
		navCmd(opts, out),
		devicesCmd(opts, out),
		usersCmd(opts, out),
		notificationsCmd(opts, out),
	)
	return root
}

// withSession logs in as opts.role, runs fn and always logs out
func withSession(opts *options, fn func(c *client.Client) error) (err error) {
	logger := zap.NewNop()
	if opts.debug {
		if l, lerr := zap.NewDevelopment(); lerr == nil {
			logger = l
		}
	}
	c := client.New(strings.TrimRight(opts.server, "/"), logger)
	if opts.lang != "" {
		c.SetLanguage(opts.lang)
	}
	if _, err := c.Login(opts.role); err != nil {
		return fmt.Errorf("login as %s: %w", opts.role, err)
	}
	defer func() {
		if lerr := c.Logout(); lerr != nil && err == nil {
			err = fmt.Errorf("logout: %w", lerr)
		}
	}()
	return fn(c)
}

func navCmd(opts *options, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "nav",
		Short: "List the destinations the role can open",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(c *client.Client) error {
				nav, err := c.Navigation()
				if err != nil {
					return err
				}
				tw := table(out, "ID", "LABEL", "CURRENT")
				for _, d := range nav.Destinations {
					current := ""
					if d.ID == nav.CurrentPage {
						current = "*"
					}
					row(tw, d.ID, d.Label, current)
				}
				return tw.Flush()
			})
		},
	}
}

func devicesCmd(opts *options, out io.Writer) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(c *client.Client) error {
				list, err := c.Devices(opts.search, status)
				if err != nil {
					return err
				}
				tw := table(out, "ID", "NAME", "TYPE", "STATUS", "LOCATION", "POWER")
				for _, d := range list.Items {
					row(tw, d.ID, d.Name, d.Type, string(d.Status), d.Location, fmt.Sprintf("%.0fW", d.Power))
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "\n%d of %d devices\n", list.Total, list.CatalogTotal)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "all", "online, offline, warning, error or all")
	return cmd
}

func usersCmd(opts *options, out io.Writer) *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(c *client.Client) error {
				list, err := c.Users(opts.search, role)
				if err != nil {
					return err
				}
				tw := table(out, "ID", "NAME", "EMAIL", "ROLE", "ACTIVE", "DELETABLE")
				for _, u := range list.Items {
					row(tw, u.ID, u.Name, u.Email, u.Role.String(), yesNo(u.IsActive), yesNo(u.CanDelete))
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "\n%d users, %d active\n", list.Total, list.ActiveCount)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&role, "role-filter", "all", "super-admin, admin, customer or all")
	return cmd
}

func notificationsCmd(opts *options, out io.Writer) *cobra.Command {
	var (
		filter  string
		readAll bool
	)
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "List notifications of a fresh session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(c *client.Client) error {
				if readAll {
					if _, err := c.MarkAllRead(); err != nil {
						return err
					}
				}
				list, err := c.Notifications(filter, opts.search)
				if err != nil {
					return err
				}
				tw := table(out, "ID", "TYPE", "TITLE", "READ", "AGE")
				for _, n := range list.Items {
					row(tw, n.ID, string(n.Type), n.Title, yesNo(n.IsRead), n.Age)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "\n%d unread of %d\n", list.UnreadCount, list.Total)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "all", "all, unread, error, warning, info or success")
	cmd.Flags().BoolVar(&readAll, "read-all", false, "mark everything read before listing")
	return cmd
}

func table(out io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	row(tw, headers...)
	return tw
}

func row(tw *tabwriter.Writer, cols ...string) {
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dashctl: %v\n", err)
		os.Exit(1)
	}
}
