// Provides platform-appropriate paths for the recipe cache.
//
// All paths follow XDG conventions on Linux and platform-native conventions
// on macOS and Windows. The tool name "hearth" is used as the subdirectory
// under the cache base path.
package paths
