package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/utilkit/pkg/logger"
	"github.com/dmitrymomot/utilkit/pkg/validator"
)

type validateResult struct {
	Valid  bool                `json:"valid"`
	Data   map[string]any      `json:"data,omitempty"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func newValidateCmd(a *app) *cobra.Command {
	var dataPath, rulesPath, messagesPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a JSON or YAML document against a YAML rule file",
		Example: `  utilkit validate --data order.json --rules order.rules.yaml
  utilkit validate --data user.yaml --rules user.rules.yaml --messages nl.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readMap(dataPath)
			if err != nil {
				return err
			}

			f, err := os.Open(rulesPath)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			rules, err := validator.LoadRules(f)
			if err != nil {
				return err
			}

			var messages map[string]string
			if messagesPath != "" {
				if messages, err = readStringMap(messagesPath); err != nil {
					return err
				}
			}

			a.log.DebugContext(cmd.Context(), "validating",
				logger.Path(dataPath),
				logger.Count(len(rules)),
			)

			validated, err := validator.Make(data, rules, messages).Validate()
			if bag := validator.ExtractValidationErrors(err); bag != nil {
				for _, e := range bag {
					a.log.DebugContext(cmd.Context(), "rule failed", logger.Field(e.Field), logger.Rule(e.Rule))
				}
				if perr := a.printJSON(validateResult{Errors: bag.Map()}); perr != nil {
					return perr
				}
				return ErrValidationFailed
			}
			if err != nil {
				return err
			}
			return a.printJSON(validateResult{Valid: true, Data: validated})
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "document to validate (.json, .yaml)")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "YAML map of field path to rules")
	cmd.Flags().StringVar(&messagesPath, "messages", "", "optional map of message overrides")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("rules")
	return cmd
}
