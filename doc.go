// Package sendcloud provides a Go client for dispatching templated SMS
// messages through the SendCloud gateway (https://www.sendcloud.net/doc/sms/api/).
//
// The library models per-country phone parsing and mobile classification,
// specificity-ranked template resolution, and a signed send pipeline with
// a clean, idiomatic Go API.
//
// # Basic Usage
//
//	client, err := sendcloud.New(sendcloud.Config{
//		User:    "sms-user",
//		Key:     "secret-key",
//		Country: "CN",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.AddTemplate(sendcloud.TemplateItem{
//		Kind:       sendcloud.KindCode,
//		TemplateID: "762226",
//		Country:    sendcloud.Ptr("CN"),
//		Default:    true,
//	})
//
//	phone, err := sendcloud.CreatePhone("+8613832922812")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := client.SendCode(context.Background(), *phone, "123456", nil)
//
// # Features
//
//   - Country-aware phone parsing, normalization and mobile/landline
//     classification with international-format round-tripping
//   - Specificity-ranked template resolution by kind, id, country and language
//   - Batch deduplication with domestic/international classification
//   - Canonical signed request payloads
//   - Distributed tracing with OpenTelemetry
//   - Context-aware operations
//
// Each send call is independent and safe to run concurrently once the
// template registry is populated. The client performs no retries: a failed
// gateway call surfaces immediately, and identical input always produces
// the identical signed payload, so callers may retry a whole send.
package sendcloud
