package main

import (
	"fmt"
	devenv "linkedin-dashboard/dev/env"
	configlibsql "linkedin-dashboard/lib/configutil/libsql"
	"linkedin-dashboard/lib/keystore"
	"log/slog"
	"os"
)

const (
	keystoreFile = "<dev_state>/keystore.db"
	localConfig  = "linkedin-cli.local.json5"
)

func CreateKeystore() error {
	path, err := devenv.ResolvePath(keystoreFile)
	if err != nil {
		return err
	}
	_, err = os.Stat(path)
	if err == nil {
		fmt.Println("keystore already created at", path)
		return nil
	}

	fmt.Println("creating keystore at", path)
	store, err := keystore.Open(configlibsql.Struct{File: keystoreFile}, nil)
	if err != nil {
		return err
	}
	return store.Close()
}

// WriteLocalConfig points the cli at the dev state: the keystore created
// above, HTTP dumps and exports.
func WriteLocalConfig() error {
	_, err := os.Stat(localConfig)
	if err == nil {
		fmt.Println("local config already exists at", localConfig)
		return nil
	}

	contents := fmt.Sprintf(`{
  keystore: { file: %q },
  debug_http_dir: "<dev_state>/http",
  export_dir: "<dev_state>/exports",
}
`, keystoreFile)
	return os.WriteFile(localConfig, []byte(contents), 0600)
}

func PrintConfigLocations() {
	slog.Info("tests against the live API need dev/.state/live_api.json5 with base_url, api_key, username and post_url, they are skipped without it.")
}
