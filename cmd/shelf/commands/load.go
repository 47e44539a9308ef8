package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/shelf/internal/app"
)

func addJobFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("job", "j", "", "Full name of the requesting job, e.g. team/app/build")
	cmd.Flags().StringP("libraries", "l", "", "YAML file declaring ad hoc libraries for the job")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
}

func resolveOptions(cmd *cobra.Command, args []string) app.ResolveOptions {
	job, _ := cmd.Flags().GetString("job")
	libraries, _ := cmd.Flags().GetString("libraries")
	return app.ResolveOptions{
		Job:           job,
		Identifiers:   args,
		LibrariesFile: libraries,
	}
}

func (c *CLI) newLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load [libraries...]",
		Short: "Resolve and retrieve libraries for an execution",
		Long: "Resolve the requested libraries (name or name@version) together with all implicit ones,\n" +
			"retrieve them into the execution's library directory and print the classpath and globals.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			executionID, _ := cmd.Flags().GetString("execution")
			dir, _ := cmd.Flags().GetString("dir")
			resume, _ := cmd.Flags().GetBool("resume")
			replacements, _ := cmd.Flags().GetStringArray("replace")
			parallel, _ := cmd.Flags().GetInt("parallel")
			asJSON, _ := cmd.Flags().GetBool("json")

			result, err := c.app.Load(cmd.Context(), app.LoadOptions{
				ResolveOptions: resolveOptions(cmd, args),
				ExecutionID:    executionID,
				JobRoot:        dir,
				Resume:         resume,
				Replacements:   replacements,
				Parallelism:    parallel,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return renderLoad(cmd.OutOrStdout(), result)
		},
	}
	addJobFlags(cmd)
	cmd.Flags().StringP("execution", "e", "", "Execution id (generated when empty)")
	cmd.Flags().StringP("dir", "d", "", "Storage root of the execution (defaults to $SHELF_HOME/jobs/<execution>)")
	cmd.Flags().Bool("resume", false, "Reuse the libraries stored by an earlier load of the execution")
	cmd.Flags().StringArray("replace", nil, "Replace a file of an untrusted library, format library:path=file")
	cmd.Flags().IntP("parallel", "p", 0, "Number of libraries retrieved at once (defaults to one per CPU)")
	return cmd
}

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [libraries...]",
		Short: "Show which libraries and versions a load would retrieve",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			resolved, err := c.app.Resolve(cmd.Context(), resolveOptions(cmd, args))
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resolvedView(resolved))
			}
			return renderResolved(cmd.OutOrStdout(), resolved)
		},
	}
	addJobFlags(cmd)
	return cmd
}
