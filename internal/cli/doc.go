// Package cli implements the hearth command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to a small command function for the actual work. The general
// structure follows a clean separation between:
//
//   - Command definitions (cobra.Command instances)
//   - Command logic (statusCommand, doctorCommand, ...)
//   - Implementation details (in other internal packages)
//
// # Command Structure
//
// The root command is "hearth" with subcommands for different operations:
//
//	hearth dash               - Live full-screen dashboard
//	hearth status             - One-shot hub summary
//	hearth alerts [ack]       - List and acknowledge alerts
//	hearth logs               - View or follow hub logs
//	hearth services [action]  - List and control hub services
//	hearth metrics [name]     - List metrics or chart one
//	hearth queries [...]      - Manage saved queries
//	hearth config [...]       - Hub config show/backup/restore
//	hearth doctor             - Diagnose issues
//	hearth init               - Create .hearth.yaml config
//
// # Output Modes
//
// Every read command takes --json and then emits a JSONEnvelope, including
// on failure, so automation gets one stable shape to parse. Text output
// renders through the ui package.
//
// # Flag Handling
//
// Global flags (--config, --verbose, --quiet, --no-color) are defined on
// the root command and available to all subcommands. Command-specific flags
// like --severity and --window are defined on individual commands.
//
// The FilterFlags type and AddAlertFilterFlags/AddLogFilterFlags functions
// provide a standard way to add filter flags to commands, including --query
// for applying a saved query from the store.
package cli
