/*
Package negntt is a library for modular arithmetic over vectors of
64-bit unsigned integers defined modulo a machine-word prime, built for
homomorphic-encryption and lattice-cryptography workloads. Its core is
the negacyclic Number Theoretic Transform in ring/, implemented with
Harvey's lazy-reduction butterfly and dispatched at runtime between a
scalar reference, a 64-bit vectorized kernel, and a 52-bit IFMA-style
kernel.
*/
package negntt
