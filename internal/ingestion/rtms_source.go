package ingestion

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"apt-market-lab/internal/normalization"
)

// DefaultBaseURL is the RTMS apartment-trade open-data endpoint.
const DefaultBaseURL = "https://apis.data.go.kr/1613000/RTMSDataSvcAptTradeDev"

// Upstream result codes.
const (
	resultCodeOK          = "000"
	resultCodeRateLimited = "22"
)

// RTMSSource fetches monthly apartment trade records from the government
// open-data API. Responses are XML; item field names vary by gateway
// encoding, which is why items are surfaced as raw key/value records and
// reconciled by the normalization package.
type RTMSSource struct {
	baseURL    string
	serviceKey string
	client     *http.Client
	debug      DebugSink // nil disables capture
}

// RTMSSourceOptions configures an RTMSSource.
type RTMSSourceOptions struct {
	BaseURL    string        // default DefaultBaseURL
	ServiceKey string        // required; resolve via ResolveServiceKey
	Timeout    time.Duration // default 30s
	Debug      DebugSink     // optional raw-artifact capture
}

// NewRTMSSource creates a new RTMSSource.
func NewRTMSSource(opts RTMSSourceOptions) *RTMSSource {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &RTMSSource{
		baseURL:    baseURL,
		serviceKey: opts.ServiceKey,
		client:     &http.Client{Timeout: timeout},
		debug:      opts.Debug,
	}
}

// Compile-time interface check.
var _ MonthlySource = (*RTMSSource)(nil)

// rtmsItem decodes one <item> element into raw key/value pairs, keeping
// whatever field names the gateway chose.
type rtmsItem struct {
	fields normalization.RawRecord
}

func (it *rtmsItem) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	it.fields = make(normalization.RawRecord)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var v string
			if err := d.DecodeElement(&v, &t); err != nil {
				return err
			}
			it.fields[t.Name.Local] = v
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

// rtmsResponse mirrors the envelope of the RTMS XML response.
type rtmsResponse struct {
	XMLName xml.Name `xml:"response"`
	Header  struct {
		ResultCode string `xml:"resultCode"`
		ResultMsg  string `xml:"resultMsg"`
	} `xml:"header"`
	Body struct {
		Items struct {
			Item []rtmsItem `xml:"item"`
		} `xml:"items"`
	} `xml:"body"`
}

// FetchMonth returns raw records for a region and YYYYMM month.
// Result code 22 maps to ErrRateLimited; HTTP, decode and any other
// non-zero result code map to *TransportError. Zero items is not an error.
func (s *RTMSSource) FetchMonth(ctx context.Context, regionCode string, yearMonth int) ([]normalization.RawRecord, error) {
	reqURL := s.requestURL(regionCode, yearMonth)
	s.capture("request_url", []byte(reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{Op: "build request", Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "http get", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read response body", Err: err}
	}
	s.capture("response_body", body)

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{
			Op:  "http get",
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var parsed rtmsResponse
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, &TransportError{Op: "decode xml", Err: err}
	}

	switch parsed.Header.ResultCode {
	case resultCodeOK:
		records := make([]normalization.RawRecord, 0, len(parsed.Body.Items.Item))
		for _, item := range parsed.Body.Items.Item {
			records = append(records, item.fields)
		}
		return records, nil

	case resultCodeRateLimited:
		return nil, ErrRateLimited

	default:
		return nil, &TransportError{
			Op:  "upstream result",
			Err: fmt.Errorf("result code %s: %s", parsed.Header.ResultCode, parsed.Header.ResultMsg),
		}
	}
}

// requestURL builds the monthly query URL.
func (s *RTMSSource) requestURL(regionCode string, yearMonth int) string {
	params := url.Values{}
	params.Set("serviceKey", s.serviceKey)
	params.Set("LAWD_CD", regionCode)
	params.Set("DEAL_YMD", fmt.Sprintf("%06d", yearMonth))
	params.Set("numOfRows", "9999")
	params.Set("pageNo", "1")
	params.Set("type", "xml")
	return s.baseURL + "/getRTMSDataSvcAptTradeDev?" + params.Encode()
}

func (s *RTMSSource) capture(name string, data []byte) {
	if s.debug != nil {
		s.debug.Capture(name, data)
	}
}
