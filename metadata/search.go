package metadata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shibi-dl/shibi/constant"
	"github.com/shibi-dl/shibi/internal/cache"
	"github.com/shibi-dl/shibi/key"
	"github.com/shibi-dl/shibi/log"
	"github.com/shibi-dl/shibi/network"
	"github.com/spf13/viper"
)

const endpoint = "https://itunes.apple.com/search"

// searchResponse defines the anticipated JSON response structure for track searches.
type searchResponse struct {
	ResultCount int         `json:"resultCount"`
	Results     []*Metadata `json:"results"`
}

// Search returns the track records matching the given term, most relevant
// first. Results are served from the local cache when available.
func Search(term string) ([]*Metadata, error) {
	term = normalized(term)

	cacheKey := cache.GenerateKey(term, "itunes")
	var cached []*Metadata
	if cache.Read(cacheKey, &cached) {
		return cached, nil
	}

	log.Infof("Searching itunes for %q", term)
	params := url.Values{}
	params.Set("term", term)
	params.Set("media", "music")
	params.Set("entity", "song")
	params.Set("limit", strconv.Itoa(viper.GetInt(key.MetadataSearchLimit)))

	req, err := http.NewRequest(http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := network.Do(req)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error("itunes returned status code " + strconv.Itoa(resp.StatusCode))
		return nil, fmt.Errorf("invalid response code %d", resp.StatusCode)
	}

	var response searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		log.Error(err)
		return nil, err
	}

	log.Infof("Got %d itunes results for %q", response.ResultCount, term)
	_ = cache.Write(cacheKey, response.Results)
	return response.Results, nil
}
