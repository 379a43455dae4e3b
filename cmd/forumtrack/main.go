package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"forumtrack/internal/app"
	"forumtrack/internal/config"
	"forumtrack/internal/model"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// A .env file in the working directory may set FORUMTRACK_* variables.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// actingUser is the --user flag shared by every command.
var actingUser string

// loadConfig reads the config file from the default location.
func loadConfig() (*config.Config, string, error) {
	defaults, err := app.LoadDefaults()
	if err != nil {
		return nil, "", fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults.ConfigPath)
	if err != nil {
		return nil, "", fmt.Errorf("reading config: %w", err)
	}
	return cfg, defaults.ConfigPath, nil
}

// newApp reads the config and creates an App. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "MarkForum", "UnreadTopics").
func newApp(operation string) (*app.App, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

func printForums(forums []*model.Forum) {
	if len(forums) == 0 {
		fmt.Println("No forums.")
		return
	}
	for _, f := range forums {
		parent := f.ParentID
		if parent == "" {
			parent = "-"
		}
		fmt.Printf("%s  %-8s  %-36s  %s\n", f.ID, f.Type, parent, f.Name)
	}
}

func printTopics(topics []*model.Topic) {
	if len(topics) == 0 {
		fmt.Println("No unread topics.")
		return
	}
	for _, t := range topics {
		fmt.Printf("%s  %s  %s\n", t.ID, t.UpdatedAt.Format("2006-01-02 15:04:05"), t.Subject)
	}
}

var rootCmd = &cobra.Command{
	Use:          "forumtrack",
	Short:        "Forum read/unread tracking",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("user") {
			return nil
		}
		defaults, err := app.LoadDefaults()
		if err != nil {
			return fmt.Errorf("getting defaults: %w", err)
		}
		actingUser = defaults.User
		return nil
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.LoadDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		siteID := uuid.New().String()
		cfg := config.NewConfig(siteID, defaults.BaseDir)

		if err := config.Init(defaults.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Printf("Site ID: %s\n", siteID)
		fmt.Printf("Base Dir: %s\n", defaults.BaseDir)
		fmt.Println("Run 'forumtrack db migrate' to create the database.")
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Printf("Configuration from %s:\n\n", path)
		fmt.Printf("Site ID:   %s\n", cfg.SiteID)
		fmt.Printf("Base Dir:  %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:   %s\n", cfg.LogDir)
		fmt.Printf("Log Level: %s\n", cfg.LogLevel)
		fmt.Printf("Database:  %s %s\n", cfg.Database.Type, cfg.Database.DataDir)
		return nil
	},
}

// db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the database",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Database.Type == "sqlite" {
			if err := os.MkdirAll(cfg.Database.DataDir, 0755); err != nil {
				return fmt.Errorf("creating data directory: %w", err)
			}
		}
		if err := app.MigrateDatabase(cfg); err != nil {
			return err
		}
		fmt.Println("Database is up to date.")
		return nil
	},
}

// user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userAddCmd = &cobra.Command{
	Use:   "add USERNAME",
	Short: "Create a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AddUser")
		if err != nil {
			return err
		}
		defer a.Close()

		u, err := a.AddUser(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created user %s (%s)\n", u.Username, u.ID)
		return nil
	},
}

// group command
var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage groups",
}

var groupAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AddGroup")
		if err != nil {
			return err
		}
		defer a.Close()

		g, err := a.AddGroup(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created group %s (%s)\n", g.Name, g.ID)
		return nil
	},
}

var groupJoinCmd = &cobra.Command{
	Use:   "join USERNAME GROUP",
	Short: "Add a user to a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("JoinGroup")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.JoinGroup(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Added %s to %s\n", args[0], args[1])
		return nil
	},
}

// forum command
var forumCmd = &cobra.Command{
	Use:   "forum",
	Short: "Manage forums",
}

var forumAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a forum",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent, _ := cmd.Flags().GetString("parent")
		forumType, _ := cmd.Flags().GetString("type")
		position, _ := cmd.Flags().GetInt64("position")

		a, err := newApp("AddForum")
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := a.AddForum(parent, args[0], forumType, position)
		if err != nil {
			return err
		}
		fmt.Printf("Created %s %s (%s)\n", f.Type, f.Name, f.ID)
		return nil
	},
}

var forumListCmd = &cobra.Command{
	Use:   "list",
	Short: "List forums",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListForums")
		if err != nil {
			return err
		}
		defer a.Close()

		forums, err := a.ListForums()
		if err != nil {
			return err
		}
		printForums(forums)
		return nil
	},
}

// topic command
var topicCmd = &cobra.Command{
	Use:   "topic",
	Short: "Manage topics",
}

var topicAddCmd = &cobra.Command{
	Use:   "add FORUM_ID SUBJECT",
	Short: "Open a topic as the acting user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		unapproved, _ := cmd.Flags().GetBool("unapproved")

		a, err := newApp("AddTopic")
		if err != nil {
			return err
		}
		defer a.Close()

		t, err := a.AddTopic(actingUser, args[0], args[1], !unapproved)
		if err != nil {
			return err
		}
		fmt.Printf("Created topic %s (%s)\n", t.Subject, t.ID)
		return nil
	},
}

// post command
var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Manage posts",
}

var postAddCmd = &cobra.Command{
	Use:   "add TOPIC_ID CONTENT",
	Short: "Reply to a topic as the acting user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AddPost")
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.AddPost(actingUser, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Created post %s\n", p.ID)
		return nil
	},
}

// perm command
var permCmd = &cobra.Command{
	Use:   "perm",
	Short: "Manage read permissions",
}

var permGrantCmd = &cobra.Command{
	Use:   "grant GRANTEE",
	Short: "Grant or deny read access (anonymous, user:NAME or group:NAME)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		forumID, _ := cmd.Flags().GetString("forum")
		deny, _ := cmd.Flags().GetBool("deny")

		a, err := newApp("Grant")
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.Grant(forumID, args[0], !deny); err != nil {
			return err
		}

		scope := "all forums"
		if forumID != "" {
			scope = "forum " + forumID
		}
		verb := "Granted"
		if deny {
			verb = "Denied"
		}
		fmt.Printf("%s read on %s to %s\n", verb, scope, args[0])
		return nil
	},
}

// unread command
var unreadCmd = &cobra.Command{
	Use:   "unread",
	Short: "Show unread content for the acting user",
}

var unreadForumsCmd = &cobra.Command{
	Use:   "forums [FORUM_ID...]",
	Short: "List forums with unread topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UnreadForums")
		if err != nil {
			return err
		}
		defer a.Close()

		forums, err := a.UnreadForums(actingUser, args)
		if err != nil {
			return err
		}
		printForums(forums)
		return nil
	},
}

var unreadTopicsCmd = &cobra.Command{
	Use:   "topics FORUM_ID",
	Short: "List unread topics in a forum",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UnreadTopics")
		if err != nil {
			return err
		}
		defer a.Close()

		topics, err := a.UnreadTopics(actingUser, args[0])
		if err != nil {
			return err
		}
		printTopics(topics)
		return nil
	},
}

// mark command
var markCmd = &cobra.Command{
	Use:   "mark",
	Short: "Mark content as read for the acting user",
}

var markForumCmd = &cobra.Command{
	Use:   "forum FORUM_ID",
	Short: "Mark a forum and its subforums as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("MarkForum")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.MarkForum(actingUser, args[0]); err != nil {
			return err
		}
		fmt.Printf("Marked forum %s as read\n", args[0])
		return nil
	},
}

var markTopicCmd = &cobra.Command{
	Use:   "topic TOPIC_ID",
	Short: "Mark a topic as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("MarkTopic")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.MarkTopic(actingUser, args[0]); err != nil {
			return err
		}
		fmt.Printf("Marked topic %s as read\n", args[0])
		return nil
	},
}

var markAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Mark every readable forum as read",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("MarkAll")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.MarkAll(actingUser); err != nil {
			return err
		}
		fmt.Println("Marked all forums as read")
		return nil
	},
}

// tracks command
var tracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "Manage stored read tracks",
}

var tracksClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the acting user's read history",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ClearTracks")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ClearTracks(actingUser); err != nil {
			return err
		}
		fmt.Printf("Cleared read tracks for %s\n", actingUser)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&actingUser, "user", "u", "", "Acting username, defaults to $FORUMTRACK_USER (empty for anonymous)")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	dbCmd.AddCommand(dbMigrateCmd)

	userCmd.AddCommand(userAddCmd)

	groupCmd.AddCommand(groupAddCmd)
	groupCmd.AddCommand(groupJoinCmd)

	forumCmd.AddCommand(forumAddCmd)
	forumCmd.AddCommand(forumListCmd)
	forumAddCmd.Flags().StringP("parent", "p", "", "Parent forum ID")
	forumAddCmd.Flags().StringP("type", "t", string(model.ForumTypeForum), "Forum type: category, forum or link")
	forumAddCmd.Flags().Int64("position", 0, "Display position among siblings")

	topicCmd.AddCommand(topicAddCmd)
	topicAddCmd.Flags().Bool("unapproved", false, "Create the topic awaiting approval")

	postCmd.AddCommand(postAddCmd)

	permCmd.AddCommand(permGrantCmd)
	permGrantCmd.Flags().StringP("forum", "f", "", "Forum ID (empty for a global grant)")
	permGrantCmd.Flags().Bool("deny", false, "Store a deny instead of an allow")

	unreadCmd.AddCommand(unreadForumsCmd)
	unreadCmd.AddCommand(unreadTopicsCmd)

	markCmd.AddCommand(markForumCmd)
	markCmd.AddCommand(markTopicCmd)
	markCmd.AddCommand(markAllCmd)

	tracksCmd.AddCommand(tracksClearCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(forumCmd)
	rootCmd.AddCommand(topicCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(permCmd)
	rootCmd.AddCommand(unreadCmd)
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(tracksCmd)
}
