// Package localai adapts a self-hosted LocalAI server to the
// modelruntime.Speech2TextModel contract.
//
// LocalAI speaks the OpenAI audio API: audio is POSTed as multipart form
// data to {server_url}/v1/audio/transcriptions with fields "model" and
// "file", and the transcript comes back as {"text": "..."}. Models are not
// catalogued; operators name them freely and GetCustomizableModelSchema
// describes whatever name they chose.
package localai
