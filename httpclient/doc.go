// Package httpclient is the outbound HTTP layer used by model adapters.
//
// An Adapter prepares a Request (base URL, default headers, auth, body
// encoding), sends it, reads the whole response and classifies failures
// into a typed *Error:
//
//	client, err := httpclient.New(httpclient.Config{
//	    Name:    "localai",
//	    Timeout: 2 * time.Minute,
//	    Auth:    httpclient.BearerAuth(apiKey),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   serverURL + "/v1/audio/transcriptions",
//	    Body: &httpclient.MultipartBody{
//	        Fields: map[string]string{"model": "whisper-1"},
//	        Files:  []httpclient.FileField{{FieldName: "file", FileName: "a.wav", Reader: f}},
//	    },
//	})
//
// Transport-level failures become ErrCodeConnection or ErrCodeTimeout;
// non-2xx responses are classified by ClassifyStatusCode. Retries and
// circuit breaking are deliberately absent: callers see the first outcome.
package httpclient
