package helper

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// pretty print
func PrettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Warn().Msg("Error pretty printing")
	}
	fmt.Println(string(b))
}
