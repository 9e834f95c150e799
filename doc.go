// Package ciphergen is the Composition Root for the ciphergen dataset generator.
//
// It connects the cipher engines, key generators and plaintext sampler (domain
// packages under pkg/) with the filesystem adapters that persist datasets.
//
// A run draws fixed-length plaintext samples from a natural-language corpus,
// encrypts each under a freshly generated random key with one of five classical
// ciphers (shift, columnar transposition, Vigenère, Playfair, Hill) and writes
// one labeled ciphertext per line:
//
//	<root>/<Cipher Name>/text_length_<n>.txt
//
// Features:
//
//   - **Independent batches**: every (cipher, length) pair is its own task on a bounded worker pool.
//   - **Reproducible**: a single seed determines every key, offset and ciphertext of a run.
//   - **Exact Hill keys**: invertibility mod 26 is decided with integer arithmetic only.
//   - **Resilient**: exhausted corpus samples and unlucky keys are retried with fresh parameters.
//   - **Documented runs**: a manifest.yaml records the run ID, seed and per-task outcome.
//
// Usage:
//
//	runner, err := ciphergen.New("brown.txt", "./data",
//		ciphergen.WithSeed(42),
//		ciphergen.WithIterations(1000),
//		ciphergen.WithLogger(logger),
//	)
//
//	report, err := runner.Run(ctx)
package ciphergen
