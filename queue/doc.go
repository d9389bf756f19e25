/*
Package queue defines requests to forget training rows from an ensemble
as well as an interface for a Queue to manage them.

It also provides an in-memory implementation of the Queue interface
*/
package queue
