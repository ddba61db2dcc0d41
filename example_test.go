package clearlydefined_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/adamwoolhether/clearlydefined"
	"github.com/adamwoolhether/clearlydefined/client"
	"github.com/adamwoolhether/clearlydefined/coordinate"
)

func ExampleNewClient() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"npm/npmjs/-/lodash/4.17.21": {
			"coordinates": {"type": "npm", "provider": "npmjs", "name": "lodash", "revision": "4.17.21"},
			"described": {"releaseDate": "2021-02-20"},
			"licensed": {"declared": "MIT"},
			"scores": {"effective": 93, "tool": 93}
		}}`)
	}))
	defer ts.Close()

	c, err := clearlydefined.NewClient(
		client.WithBaseURL(ts.URL),
		client.WithTimeout(5*time.Second),
	)
	if err != nil {
		fmt.Println("build error:", err)
		return
	}

	lodash := coordinate.MustParse("npm/npmjs/-/lodash/4.17.21")

	resp, err := c.Definitions(context.Background(), lodash)
	if err != nil {
		fmt.Println("request error:", err)
		return
	}

	def, _ := resp.Lookup(lodash)
	fmt.Println(def.DeclaredLicense(), def.Described.ReleaseDate)
	// Output: MIT 2021-02-20
}
