/*
Package ports defines the driven ports (interfaces) for the espalier engine.

These interfaces decouple the core binding logic from external
implementations, allowing the engine to work with various definition
backends and custom value converters.

# Key Interfaces

  - ValueTransformer: Converts values between adjacent representations
    (storage, normalized, presentation).
  - DefinitionSource: Loads form definitions (e.g., from Loam, files,
    Memory, Redis or OpenAPI documents).
  - Watchable: Optional extension of DefinitionSource for hot reload.
*/
package ports
