package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"zenith/internal/bootstrap"
	contactdto "zenith/internal/modules/contact/dto"
	pipelinedto "zenith/internal/modules/pipeline/dto"
)

func newContactCmd(o *rootOptions) *cobra.Command {
	contact := &cobra.Command{Use: "contact", Short: "Contact book"}

	contact.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				contacts := app.ContactCLI.List(ctx)
				if len(contacts) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no contacts")
					return nil
				}
				for _, c := range contacts {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Company, c.Email, c.Phone)
				}
				return nil
			})
		},
	})

	var in contactdto.ContactInput
	add := &cobra.Command{
		Use:   "add --name <name>",
		Short: "Add a contact",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := required("name", in.Name); err != nil {
				return err
			}
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				c, err := app.ContactCLI.Add(ctx, in)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "contact added: %s %s\n", c.ID, c.Name)
				return nil
			})
		},
	}
	contactFlags(add, &in)

	var id string
	update := &cobra.Command{
		Use:   "update --id <id>",
		Short: "Change contact fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := required("id", id); err != nil {
				return err
			}
			input := contactdto.UpdateInput{
				ID:      id,
				Name:    optional(cmd, "name", in.Name),
				Company: optional(cmd, "company", in.Company),
				Email:   optional(cmd, "email", in.Email),
				Phone:   optional(cmd, "phone", in.Phone),
				Notes:   optional(cmd, "notes", in.Notes),
			}
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.ContactCLI.Update(ctx, input); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "contact updated")
				return nil
			})
		},
	}
	update.Flags().StringVar(&id, "id", "", "contact id")
	contactFlags(update, &in)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a contact; its prospects stay as orphans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.ContactCLI.Delete(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "contact deleted")
				return nil
			})
		},
	}

	contact.AddCommand(add, update, del)
	return contact
}

func contactFlags(cmd *cobra.Command, in *contactdto.ContactInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "full name")
	cmd.Flags().StringVar(&in.Company, "company", "", "company")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "free-form notes")
}

func newProspectCmd(o *rootOptions) *cobra.Command {
	prospect := &cobra.Command{Use: "prospect", Short: "Sales pipeline prospects"}

	var board bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List prospects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				out := cmd.OutOrStdout()
				if board {
					for _, lane := range app.PipelineCLI.Board(ctx) {
						_, _ = fmt.Fprintf(out, "%s (%d)\n", lane.Stage, len(lane.Prospects))
						for _, p := range lane.Prospects {
							_, _ = fmt.Fprintf(out, "  %s\t%s\t%s\t%s\n", p.ID, prospectName(p), p.Company, p.FollowUpDate)
						}
					}
					return nil
				}
				prospects := app.PipelineCLI.ListProspects(ctx)
				if len(prospects) == 0 {
					_, _ = fmt.Fprintln(out, "no prospects")
					return nil
				}
				for _, p := range prospects {
					_, _ = fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Stage, prospectName(p), p.Company, p.FollowUpDate)
				}
				return nil
			})
		},
	}
	list.Flags().BoolVar(&board, "board", false, "group by stage")

	var contactID, stage, notes, followUp string
	promote := &cobra.Command{
		Use:   "promote --contact <id>",
		Short: "Add a contact to the pipeline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := required("contact", contactID); err != nil {
				return err
			}
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				id, err := app.PipelineCLI.Promote(ctx, contactID, stage, notes, followUp)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "prospect added: %s\n", id)
				return nil
			})
		},
	}
	promote.Flags().StringVar(&contactID, "contact", "", "contact id")
	promote.Flags().StringVar(&stage, "stage", "", "stage (default first stage)")
	promote.Flags().StringVar(&notes, "notes", "", "notes")
	promote.Flags().StringVar(&followUp, "follow-up", "", "follow-up date (YYYY-MM-DD)")

	move := &cobra.Command{
		Use:   "move <id> <stage>",
		Short: "Move a prospect to another stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.PipelineCLI.MoveProspect(ctx, args[0], args[1]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "prospect moved to %s\n", args[1])
				return nil
			})
		},
	}

	var id string
	update := &cobra.Command{
		Use:   "update --id <id>",
		Short: "Change prospect stage, notes or follow-up date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := required("id", id); err != nil {
				return err
			}
			input := pipelinedto.UpdateProspectInput{
				ID:           id,
				Stage:        optional(cmd, "stage", stage),
				Notes:        optional(cmd, "notes", notes),
				FollowUpDate: optional(cmd, "follow-up", followUp),
			}
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.PipelineCLI.UpdateProspect(ctx, input); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "prospect updated")
				return nil
			})
		},
	}
	update.Flags().StringVar(&id, "id", "", "prospect id")
	update.Flags().StringVar(&stage, "stage", "", "stage")
	update.Flags().StringVar(&notes, "notes", "", "notes")
	update.Flags().StringVar(&followUp, "follow-up", "", "follow-up date (YYYY-MM-DD), empty to clear")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a prospect from the pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.PipelineCLI.DeleteProspect(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "prospect deleted")
				return nil
			})
		},
	}

	prospect.AddCommand(list, promote, move, update, del)
	return prospect
}

func prospectName(p pipelinedto.ProspectOutput) string {
	if p.Orphaned {
		return "(deleted contact)"
	}
	return p.ContactName
}

func newStageCmd(o *rootOptions) *cobra.Command {
	stage := &cobra.Command{Use: "stage", Short: "Pipeline stages"}

	stage.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stages in board order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				stages := app.PipelineCLI.Stages(ctx)
				if len(stages) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no stages; run `zenith stage init`")
					return nil
				}
				for _, s := range stages {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.ID, s.Name)
				}
				return nil
			})
		},
	})

	stage.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default stages when none exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				n, err := app.PipelineCLI.SeedStages(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d stages created\n", n)
				return nil
			})
		},
	})

	stage.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Append a stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.PipelineCLI.AddStage(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "stage added")
				return nil
			})
		},
	})

	stage.AddCommand(&cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a stage and move its prospects along",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.PipelineCLI.RenameStage(ctx, args[0], args[1]); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "stage renamed")
				return nil
			})
		},
	})

	stage.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stage, moving its prospects to the first remaining one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.PipelineCLI.DeleteStage(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "stage %s deleted; %d prospects moved to %s\n", out.Stage, out.Reassigned, out.Fallback)
				return nil
			})
		},
	})
	return stage
}
