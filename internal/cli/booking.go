package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var bookingCmd = &cobra.Command{
	Use:   "booking",
	Short: "Inspect and repair bookings",
}

var bookingSetStatusCmd = &cobra.Command{
	Use:   "set-status [booking-id] [status]",
	Short: "Force a booking into a status",
	Long:  `Overrides the booking lifecycle. Both parties are notified. Use for support cases only.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runBookingSetStatus,
}

func init() {
	bookingCmd.AddCommand(bookingSetStatusCmd)
	rootCmd.AddCommand(bookingCmd)
}

func runBookingSetStatus(cmd *cobra.Command, args []string) error {
	if statusSetter == nil {
		return errNotConfigured
	}

	bookingID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid booking id %q", args[0])
	}

	b, err := statusSetter.Execute(cmd.Context(), bookingID, args[1])
	if err != nil {
		return fmt.Errorf("failed to set status: %w", err)
	}

	cmd.Printf("Booking %s is now %s (version %d)\n", b.ID, b.Status, b.Version)
	return nil
}
