package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token    string
		AdminIDs []int64 `mapstructure:"admin_ids"`
	} `mapstructure:"telegram"`

	Sheets struct {
		SpreadsheetID   string `mapstructure:"spreadsheet_id"`
		CredentialsJSON string `mapstructure:"credentials_json"`
		CredentialsFile string `mapstructure:"credentials_file"`
	} `mapstructure:"sheets"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Log struct {
		Dir string
	} `mapstructure:"log"`
}

func Load(path string) (Config, error) {
	_ = gotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	// Секреты из окружения перекрывают файл.
	if tok := os.Getenv("API_TOKEN"); tok != "" {
		c.Telegram.Token = tok
	}
	if creds := os.Getenv("GOOGLE_CREDENTIALS_JSON"); creds != "" {
		c.Sheets.CredentialsJSON = creds
	}
	if id := os.Getenv("GOOGLE_SHEET_ID"); id != "" {
		c.Sheets.SpreadsheetID = id
	}

	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate проверяет обязательные поля, каждое со своим диагнозом —
// при старте должно быть сразу видно, чего именно не хватает.
func (c Config) Validate() error {
	if c.Telegram.Token == "" {
		return errors.New("telegram token is not set (telegram.token or API_TOKEN)")
	}
	if len(c.Telegram.AdminIDs) == 0 {
		return errors.New("admin ids are not set (telegram.admin_ids)")
	}
	if c.Sheets.SpreadsheetID == "" {
		return errors.New("spreadsheet id is not set (sheets.spreadsheet_id or GOOGLE_SHEET_ID)")
	}
	if c.Sheets.CredentialsJSON == "" && c.Sheets.CredentialsFile == "" {
		return errors.New("google credentials are not set (sheets.credentials_json, sheets.credentials_file or GOOGLE_CREDENTIALS_JSON)")
	}
	if c.Sheets.CredentialsFile != "" && c.Sheets.CredentialsJSON == "" {
		if _, err := os.Stat(c.Sheets.CredentialsFile); err != nil {
			return fmt.Errorf("credentials file %q is not readable: %w", c.Sheets.CredentialsFile, err)
		}
	}
	return nil
}
