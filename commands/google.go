package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const SHEETS = "https://www.googleapis.com/auth/spreadsheets.readonly"

func authorize(credentials, scope, dir string) (*http.Client, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	config, err := google.ConfigFromJSON(b, scope)
	if err != nil {
		return nil, err
	}

	_, file := filepath.Split(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))
	tokens := filepath.Join(dir, fmt.Sprintf("%s.sheets", name))

	token, err := tokenFromFile(tokens)
	if err != nil {
		if token, err = tokenFromWeb(config); err != nil {
			return nil, err
		}

		if err := saveToken(tokens, token); err != nil {
			warnf("unable to cache OAuth token (%v)", err)
		}
	}

	return config.Client(context.Background(), token), nil
}

// Requests a token from the web, then returns the retrieved token.
func tokenFromWeb(config *oauth2.Config) (*oauth2.Token, error) {
	url := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

	fmt.Printf("Go to the following link in your browser then type the authorization code: \n%v\n", url)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("unable to read authorization code (%v)", err)
	}

	token, err := config.Exchange(context.TODO(), code)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web (%v)", err)
	}

	return token, nil
}

// Retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	token := oauth2.Token{}
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, err
	}

	return &token, nil
}

// Saves a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	infof("saving credential file to %s", path)

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
