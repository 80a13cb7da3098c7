// Package integrity verifies downloaded artifacts against declared digests.
//
// Checksums use the OCI digest format "algorithm:hexdigest" (e.g.
// "sha256:9f86d0..."). Verification always runs before an artifact is
// extracted or otherwise trusted; skipping it is only permitted when the
// recipe declares no checksum at all, which is logged as a warning.
package integrity
