// Package gyazo provides a client for the Gyazo image and video hosting API.
//
// The client covers three authentication conventions:
//
//   - Access key ("access token"): the official API, sent as the access_token query parameter
//   - Session cookie: the undocumented internal API, sent as the Gyazo_session cookie
//   - Device identifier: the browser-style CGI upload and the video upload endpoints
//
// Credentials are optional at construction. An operation that needs one that is
// missing fails with a *MissingCredentialError before any request is sent.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client := gyazo.NewClient(gyazo.Credentials{Key: "your-access-token"}, logger)
//
//	ctx := context.Background()
//	for file, err := range client.List(ctx) {
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(file.Download)
//	}
//
// # Normalization
//
// The API reports some videos as "gif". Before an Image becomes a File, every gif
// is probed at https://i.gyazo.com/download/<id>.mp4 and reclassified as "mp4"
// when the video asset exists, so the download URL of the File is correct.
//
// # Error Handling
//
// Every failure is one of the typed errors in this package:
//
//   - MissingCredentialError: a required credential is not configured
//   - RequestError: the HTTP round trip failed
//   - FileError: a local file could not be read
//   - URLError: a response body was not a URL
//   - APIError: non-2xx status, classified as an APIStatus, with the raw body
//   - DecodeError: the JSON body did not match the expected type, with the raw body
//   - ProtocolError: a 2xx response broke an assumption, eg. a missing X-Total-Count header
//
// Nothing is retried. Rate limiting is reported as StatusRateLimited:
//
//	var apiErr *gyazo.APIError
//	if errors.As(err, &apiErr) && apiErr.IsRateLimited() {
//		// back off
//	}
package gyazo
